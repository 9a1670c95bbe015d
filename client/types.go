package client

import (
	"encoding/json"
	"strings"
)

// RawAmount is a motes amount as the API reports it. CSPR Cloud is not
// consistent about numbers vs strings here, and a single bad value must not
// fail the whole account, so unmarshalling keeps the raw token and parsing
// is deferred to the aggregator.
type RawAmount string

var _ json.Unmarshaler = (*RawAmount)(nil)

func (r *RawAmount) UnmarshalJSON(p []byte) error {
	s := strings.TrimSpace(string(p))
	if s == "null" {
		*r = ""
		return nil
	}
	*r = RawAmount(strings.Trim(s, "\""))
	return nil
}

// Account is the `data` payload of GET /accounts/{key}.
type Account struct {
	PublicKey   string    `json:"public_key"`
	AccountHash string    `json:"account_hash,omitempty"`
	Balance     RawAmount `json:"balance"`
}

type AccountResponse struct {
	Data *Account `json:"data"`
}

// Delegation is one entry of the `data` list of
// GET /accounts/{key}/delegations.
type Delegation struct {
	ValidatorPublicKey string    `json:"validator_public_key,omitempty"`
	Stake              RawAmount `json:"stake"`
}

type DelegationsResponse struct {
	Data []Delegation `json:"data"`
}
