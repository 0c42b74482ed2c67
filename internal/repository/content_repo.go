package repository

import (
	"time"

	"github.com/agapechurch/chms-backend/internal/domain"
)

// ContentRepository is the per-type adapter the workflow and versioning
// engines dispatch through. Both content variants implement it.
type ContentRepository interface {
	Type() domain.ContentType

	FindByID(id string) (domain.ContentItem, error)

	// UpdateGuarded applies workflow field updates only when the row's
	// current status is in the allowed set. The returned count is the
	// concurrency guard: zero rows means the status changed underneath us.
	UpdateGuarded(id string, from []domain.ContentStatus, fields map[string]any) (int64, error)

	// IncrementVersion bumps the version counter atomically in the store;
	// the counter is never read-modify-written across round trips.
	IncrementVersion(id string) error

	// Snapshot builds an immutable history record from the live item,
	// tagged with the item's current version. No I/O.
	Snapshot(item domain.ContentItem, actorID string) (*domain.ContentVersion, error)

	// ApplySnapshot overwrites the versioned fields of the live row with a
	// historical snapshot's values. Status and version are never touched.
	ApplySnapshot(id string, v *domain.ContentVersion) error
}

// Snapshot extras are stored as JSON; times round-trip as RFC3339 strings.

func timeToExtra(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func extraToTime(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func extraToString(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func extraToStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func extraToBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
