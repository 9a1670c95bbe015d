package leaderboard

import (
	"sort"
	"strconv"
	"time"

	"github.com/casperstats/cspr-leaderboard/client"
)

// Row is one ranked leaderboard entry. Motes amounts marshal as strings so
// downstream consumers never lose precision to 64-bit number parsing.
type Row struct {
	Rank           int    `json:"rank"`
	PublicKeyShort string `json:"public_key_short"`

	TotalCSPR  string `json:"total_cspr"`
	LiquidCSPR string `json:"liquid_cspr"`
	StakedCSPR string `json:"staked_cspr"`

	PublicKey   PublicKey `json:"public_key"`
	CsprLiveURL string    `json:"cspr_live_url"`

	TotalMotes  AmountMotes `json:"total_motes"`
	LiquidMotes AmountMotes `json:"liquid_motes"`
	StakedMotes AmountMotes `json:"staked_motes"`
}

// ErrorRecord is a key whose account or delegation lookup failed. Failed
// keys appear here and nowhere in the rows.
type ErrorRecord struct {
	PublicKey PublicKey `json:"public_key"`
	Error     string    `json:"error"`
}

// Report is the full leaderboard output.
type Report struct {
	Network   string        `json:"network"`
	UpdatedAt string        `json:"updated_at"`
	Rows      []Row         `json:"rows"`
	Errors    []ErrorRecord `json:"errors"`
}

// NewRow aggregates one account's holdings into an unranked row.
// The liquid balance and each delegation stake are parsed leniently: a
// value that is not a valid integer contributes zero.
func NewRow(publicKey PublicKey, account *client.Account, delegations []client.Delegation, network string) Row {
	liquid := NewAmountMotesFromStr(string(account.Balance))
	staked := NewAmountMotesFromUint64(0)
	for _, delegation := range delegations {
		stake := NewAmountMotesFromStr(string(delegation.Stake))
		staked = staked.Add(&stake)
	}
	total := liquid.Add(&staked)

	return Row{
		PublicKeyShort: publicKey.Short(),
		TotalCSPR:      total.CSPRString(),
		LiquidCSPR:     liquid.CSPRString(),
		StakedCSPR:     staked.CSPRString(),
		PublicKey:      publicKey,
		CsprLiveURL:    publicKey.ExplorerURL(network),
		TotalMotes:     total,
		LiquidMotes:    liquid,
		StakedMotes:    staked,
	}
}

// BuildReport sorts rows by total holdings descending (stable, so equal
// totals keep input order), assigns 1-based ranks, and stamps the report.
func BuildReport(network string, rows []Row, errors []ErrorRecord) Report {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalMotes.Cmp(&rows[j].TotalMotes) > 0
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if errors == nil {
		errors = []ErrorRecord{}
	}
	return Report{
		Network:   network,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:      rows,
		Errors:    errors,
	}
}

// CSVHeader is the fixed column order of the CSV report.
func CSVHeader() []string {
	return []string{
		"rank",
		"public_key_short",
		"total_cspr",
		"liquid_cspr",
		"staked_cspr",
		"public_key",
		"cspr_live_url",
		"total_motes",
		"liquid_motes",
		"staked_motes",
	}
}

// CSVRecord renders the row in CSVHeader() column order.
func (r *Row) CSVRecord() []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.PublicKeyShort,
		r.TotalCSPR,
		r.LiquidCSPR,
		r.StakedCSPR,
		string(r.PublicKey),
		r.CsprLiveURL,
		r.TotalMotes.String(),
		r.LiquidMotes.String(),
		r.StakedMotes.String(),
	}
}
