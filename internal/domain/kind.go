package domain

import (
	"context"
	"strings"
)

// RecordKind identifies which kind of source facts a delta batch carries.
type RecordKind string

const (
	// KindBets covers settled stake/turnover records.
	KindBets RecordKind = "bets"
	// KindOdds covers price and commission quotes.
	KindOdds RecordKind = "odds"
	// KindMatchResult covers final match result facts.
	KindMatchResult RecordKind = "match_result"
)

// KindFromKey derives the record kind from the second path segment of an
// object key, e.g. "bd_bets/odds/day=20250221/part-0.parquet" -> KindOdds.
// ok is false when the key names no known kind; callers are expected to
// skip such objects rather than fail.
func KindFromKey(key string) (RecordKind, bool) {
	parts := strings.Split(key, "/")
	if len(parts) < 2 {
		return "", false
	}
	switch k := RecordKind(parts[1]); k {
	case KindBets, KindOdds, KindMatchResult:
		return k, true
	}
	return "", false
}

// ObjectStore is the object-storage surface the consolidator depends on.
// Implementations read and write whole objects; the consolidator performs
// no partial I/O.
type ObjectStore interface {
	// Exists reports whether the object is present, without fetching it.
	Exists(ctx context.Context, bucket, key string) (bool, error)
	// Get fetches the full object body.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Put writes the full object body, replacing any previous version.
	Put(ctx context.Context, bucket, key string, data []byte) error
}
