// Package oracle indexes EMA oracle samples for direction-independent lookup.
package oracle

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"feeScope/internal/model"
)

// ErrEntryMissing is returned when no sample exists for a lookup key.
var ErrEntryMissing = errors.New("oracle: entry missing")

// Key identifies one oracle sample.
type Key struct {
	Source string
	Period string
	Pair   string
}

// Index maps (source, period, pair) to the oracle sample. It is read-only
// after Build and safe for concurrent use.
type Index struct {
	entries map[Key]model.OracleEntry
}

// Build indexes entries. A later entry for the same key replaces an earlier one.
func Build(entries []model.OracleEntry) *Index {
	idx := &Index{entries: make(map[Key]model.OracleEntry, len(entries))}
	for _, entry := range entries {
		key := Key{
			Source: entry.Source,
			Period: entry.Period,
			Pair:   PairKey(entry.Assets[0], entry.Assets[1]),
		}
		idx.entries[key] = entry
	}
	return idx
}

// Lookup returns the sample for source, period and pairKey.
func (i *Index) Lookup(source, period, pairKey string) (model.OracleEntry, error) {
	if i != nil {
		if entry, ok := i.entries[Key{Source: source, Period: period, Pair: pairKey}]; ok {
			return entry, nil
		}
	}
	return model.OracleEntry{}, fmt.Errorf("%w: source %s, period %s, pair %s", ErrEntryMissing, source, period, pairKey)
}

// LookupPair is Lookup with the pair key derived from two asset ids.
func (i *Index) LookupPair(source, period, assetA, assetB string) (model.OracleEntry, error) {
	return i.Lookup(source, period, PairKey(assetA, assetB))
}

// Len returns the number of indexed samples.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// PairKey joins two asset ids in ascending numeric order, e.g. "0-5".
// Ids that are not numbers sort after numeric ids, lexically.
func PairKey(a, b string) string {
	if idLess(b, a) {
		a, b = b, a
	}
	return a + "-" + b
}

// Lower returns the asset id that sorts first, which is the A side of a pair.
func Lower(a, b string) string {
	if idLess(b, a) {
		return b
	}
	return a
}

// SortIDs orders asset ids the way PairKey does.
func SortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool { return idLess(ids[i], ids[j]) })
}

func idLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
