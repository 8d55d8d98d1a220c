package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityKeyPrefersItemCode(t *testing.T) {
	a := &Record{ItemCode: "BT-123", Title: "PowerVolt 12V"}
	b := &Record{ItemCode: "bt 123", Title: "completely different title"}

	// Same code modulo whitespace/case/punctuation means same product,
	// regardless of every other field.
	assert.Equal(t, IdentityKey(a), IdentityKey(b))
}

func TestIdentityKeyFallback(t *testing.T) {
	a := &Record{Title: "PowerVolt  12V", Voltage: "12", AmpereHour: "35", Category: "Passengers"}
	b := &Record{Title: "powervolt 12v", Voltage: "12", AmpereHour: "35", Category: "PASSENGERS"}
	c := &Record{Title: "PowerVolt 12V", Voltage: "12", AmpereHour: "45", Category: "Passengers"}

	assert.Equal(t, IdentityKey(a), IdentityKey(b))
	assert.NotEqual(t, IdentityKey(a), IdentityKey(c))
}

func TestFilterDropsRepeatsKeepsOrder(t *testing.T) {
	d := NewDeduplicator()

	r1 := &Record{ItemCode: "A-1"}
	r2 := &Record{ItemCode: "B-2"}
	r3 := &Record{ItemCode: "a1"} // same product as r1
	r4 := &Record{ItemCode: "C-3"}

	kept := d.Filter([]*Record{r1, r2, r3, r4})
	require.Len(t, kept, 3)
	assert.Same(t, r1, kept[0])
	assert.Same(t, r2, kept[1])
	assert.Same(t, r4, kept[2])
	assert.Equal(t, 1, d.Duplicates())
}

// The seen-set lives across batches: the same product surfacing from a
// different combination later in the run is still a duplicate.
func TestFilterStateSurvivesBatches(t *testing.T) {
	d := NewDeduplicator()

	first := d.Filter([]*Record{{ItemCode: "BT-9"}})
	require.Len(t, first, 1)

	second := d.Filter([]*Record{{ItemCode: "BT-9", Category: "Two Wheelers"}})
	assert.Empty(t, second)
	assert.Equal(t, 1, d.Duplicates())
	assert.Equal(t, 1, d.Seen())
}

func TestFilterEmptyCodeRecordsDoNotCollideWithEachOther(t *testing.T) {
	d := NewDeduplicator()

	a := &Record{Title: "Alpha", Voltage: "12"}
	b := &Record{Title: "Beta", Voltage: "12"}

	kept := d.Filter([]*Record{a, b})
	assert.Len(t, kept, 2)
	assert.Zero(t, d.Duplicates())
}

func TestFilterNilBatch(t *testing.T) {
	d := NewDeduplicator()
	assert.Empty(t, d.Filter(nil))
}
