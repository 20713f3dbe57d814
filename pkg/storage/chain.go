package storage

import (
	"context"
	"errors"

	"tableflip.dev/stickies/pkg/note"
)

// Tier names the store a load was served from.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierFallback Tier = "fallback"
	// TierNone means neither tier could be read.
	TierNone Tier = "none"
)

var errNoPrimary = errors.New("storage: no primary store configured")

// LoadResult is the combined outcome of a chained load.
type LoadResult struct {
	Records     []note.Record
	Source      Tier
	PrimaryErr  error
	FallbackErr error
}

// SaveResult is the combined outcome of a chained save.
type SaveResult struct {
	PrimaryErr  error
	FallbackErr error
	// FallbackSkipped is set when no fallback is configured.
	FallbackSkipped bool
}

// Persisted reports whether at least one tier holds the saved state.
func (r SaveResult) Persisted() bool {
	return r.PrimaryErr == nil || (!r.FallbackSkipped && r.FallbackErr == nil)
}

// Err joins the errors of both tiers.
func (r SaveResult) Err() error {
	return errors.Join(r.PrimaryErr, r.FallbackErr)
}

// Chain tries the primary tier and falls back to the secondary one. It never
// panics on a nil fallback and never returns a bare error: callers inspect the
// result to decide what to log.
type Chain struct {
	Primary  Adapter
	Fallback Backend
}

// Load reads the primary tier. Only when the primary fails is the fallback
// consulted. An empty primary is a valid answer and is not a failure.
func (c Chain) Load(ctx context.Context) LoadResult {
	var res LoadResult
	if c.Primary == nil {
		res.PrimaryErr = errNoPrimary
	} else {
		records, err := c.Primary.Load(ctx)
		if err == nil {
			res.Records = records
			res.Source = TierPrimary
			return res
		}
		res.PrimaryErr = err
	}

	if c.Fallback == nil {
		res.Source = TierNone
		return res
	}
	records, err := c.Fallback.Load(ctx)
	if err != nil {
		res.FallbackErr = err
		res.Source = TierNone
		return res
	}
	res.Records = records
	res.Source = TierFallback
	return res
}

// Save writes the primary tier and mirrors the same state into the fallback,
// which is the only copy when the primary write fails.
func (c Chain) Save(ctx context.Context, notes []note.Note) SaveResult {
	var res SaveResult
	if c.Primary == nil {
		res.PrimaryErr = errNoPrimary
	} else {
		res.PrimaryErr = c.Primary.Save(ctx, notes)
	}
	if c.Fallback == nil {
		res.FallbackSkipped = true
		return res
	}
	res.FallbackErr = c.Fallback.Save(ctx, notes)
	return res
}

// Backup snapshots through the primary tier only.
func (c Chain) Backup(ctx context.Context, notes []note.Note) (string, error) {
	if c.Primary == nil {
		return "", errNoPrimary
	}
	return c.Primary.Backup(ctx, notes)
}
