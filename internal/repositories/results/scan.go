package results

import (
	"context"
	"strings"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	redisclient "github.com/KirkDiggler/wynn-optimizer/internal/redis"
)

// Corruption describes a run log holding records that no longer decode
type Corruption struct {
	RunID   string
	Records int
	Corrupt []string
	Fixed   bool
}

// ScanReport is the outcome of ScanRedis
type ScanReport struct {
	Runs      int
	Corrupted []*Corruption
}

// ScanRedis walks every run log in redis and reports the ones holding
// records that do not decode as a candidate. With fix set the corrupt
// records are removed from their list and the rest is kept in order.
func ScanRedis(ctx context.Context, client redisclient.Client, fix bool) (*ScanReport, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}

	report := &ScanReport{}
	iter := client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		report.Runs++

		raw, err := client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return report, errors.Wrapf(err, "failed to read %s", key)
		}

		c := &Corruption{RunID: strings.TrimPrefix(key, keyPrefix), Records: len(raw)}
		for _, rec := range raw {
			if _, err := decodeRecord(rec); err != nil {
				c.Corrupt = append(c.Corrupt, rec)
			}
		}
		if len(c.Corrupt) == 0 {
			continue
		}

		if fix {
			for _, rec := range c.Corrupt {
				if err := client.LRem(ctx, key, 0, rec).Err(); err != nil {
					return report, errors.Wrapf(err, "failed to remove corrupt record from %s", key)
				}
			}
			c.Fixed = true
		}
		report.Corrupted = append(report.Corrupted, c)
	}
	if err := iter.Err(); err != nil {
		return report, errors.Wrap(err, "failed to scan run logs")
	}
	return report, nil
}
