package leaderboard

import (
	"context"
	"time"

	"github.com/casperstats/cspr-leaderboard/client"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Runner processes keys strictly one at a time: both lookups for a key
// finish before the next key starts, with a fixed spacing between keys to
// stay friendly to the API.
type Runner struct {
	client  *client.Client
	network string
	limiter *rate.Limiter
	logger  *log.Entry
}

func NewRunner(apiClient *client.Client, network string, interval time.Duration) *Runner {
	return &Runner{
		client:  apiClient,
		network: network,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  log.WithField("network", network),
	}
}

// Run fetches and aggregates every key. Each key yields exactly one row or
// one error record; a failed key never produces a partial row. The only
// returned error is context cancellation.
func (r *Runner) Run(ctx context.Context, keys []PublicKey) ([]Row, []ErrorRecord, error) {
	rows := []Row{}
	errorRecords := []ErrorRecord{}

	for i, key := range keys {
		if err := r.limiter.Wait(ctx); err != nil {
			return rows, errorRecords, err
		}
		logger := r.logger.WithFields(log.Fields{
			"key":      key.Short(),
			"progress": i + 1,
			"total":    len(keys),
		})

		row, err := r.processKey(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return rows, errorRecords, ctx.Err()
			}
			logger.WithError(err).Warn("failed to process key")
			errorRecords = append(errorRecords, ErrorRecord{PublicKey: key, Error: err.Error()})
			continue
		}
		logger.WithField("total_cspr", row.TotalCSPR).Info("processed key")
		rows = append(rows, row)
	}
	return rows, errorRecords, nil
}

func (r *Runner) processKey(ctx context.Context, key PublicKey) (Row, error) {
	account, err := r.client.FetchAccount(ctx, string(key))
	if err != nil {
		return Row{}, err
	}
	delegations, err := r.client.FetchDelegations(ctx, string(key))
	if err != nil {
		return Row{}, err
	}
	return NewRow(key, account, delegations, r.network), nil
}
