package scraper

import (
	"strings"

	"batteryspec/worker/helpers"
)

// Deduplicator drops records already seen during the lifetime of a run.
// The seen-set is owned by the orchestrator and lives across every page
// visit: distinct combinations can resolve to the same physical product.
//
// The fallback (non-code) key is a best-effort heuristic. Near-duplicates
// with differing field text survive as distinct rows, and distinct products
// with identical fields collide; neither case is detected here.
type Deduplicator struct {
	seen       map[string]struct{}
	duplicates int
}

// NewDeduplicator creates an empty deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// IdentityKey computes the deduplication fingerprint of a record. A stable
// item code wins outright; otherwise the key is a normalized concatenation
// of the fields most likely to pin down one physical product.
func IdentityKey(r *Record) string {
	if code := helpers.NormalizeKey(r.ItemCode); code != "" {
		return "code:" + code
	}

	parts := []string{
		r.ItemCode, r.Title, r.Voltage, r.AmpereHour,
		r.Dimensions, r.Category, r.VehicleBrand, r.VehicleModel,
	}
	for i, p := range parts {
		parts[i] = helpers.NormalizeKey(p)
	}
	return "fp:" + strings.Join(parts, "|")
}

// Filter returns the records not seen before, in their original order, and
// registers them as seen. Repeats bump the duplicate counter.
func (d *Deduplicator) Filter(records []*Record) []*Record {
	kept := records[:0:0]
	for _, r := range records {
		key := IdentityKey(r)
		if _, ok := d.seen[key]; ok {
			d.duplicates++
			continue
		}
		d.seen[key] = struct{}{}
		kept = append(kept, r)
	}
	return kept
}

// Duplicates returns the number of records dropped so far.
func (d *Deduplicator) Duplicates() int {
	return d.duplicates
}

// Seen returns the number of distinct identity keys registered so far.
func (d *Deduplicator) Seen() int {
	return len(d.seen)
}
