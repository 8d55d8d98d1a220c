package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "batteryspec/worker/pkg/errors"
)

const (
	fakeLanding  = "https://shop.example/battery-finder"
	selCategory  = "#vehicle_category"
	selBrand     = "#vehicle_brand"
	selModel     = "#vehicle_model"
	selFuel      = "#fuel_type"
	placeholderV = ""
)

// fakeForm drives a two-category, two-brand, one-model, one-fuel dependent
// form entirely in memory. Lower levels only populate once every upper level
// holds a selection, mirroring how the live form behaves.
type fakeForm struct {
	landingNavs int
	selections  map[string]string

	navErr         error
	failSelectVal  string // Select on this value always errors
	emptyModelsFor string // brand value whose model list stays empty
}

func newFakeForm() *fakeForm {
	return &fakeForm{selections: make(map[string]string)}
}

func (f *fakeForm) Navigate(_ context.Context, url string) error {
	if f.navErr != nil {
		return f.navErr
	}
	if url == fakeLanding {
		f.landingNavs++
	}
	f.selections = make(map[string]string)
	return nil
}

func (f *fakeForm) Select(_ context.Context, selector, value string) error {
	if value == f.failSelectVal {
		return apperr.NewDOM("select", "no element matched", nil)
	}
	f.selections[selector] = value
	// Choosing an upper level resets everything beneath it.
	switch selector {
	case selCategory:
		delete(f.selections, selBrand)
		delete(f.selections, selModel)
	case selBrand:
		delete(f.selections, selModel)
	}
	return nil
}

func (f *fakeForm) Options(_ context.Context, selector string) ([]DropdownOption, error) {
	prompt := DropdownOption{Value: placeholderV, Text: "Select an option"}
	switch selector {
	case selCategory:
		return []DropdownOption{
			prompt,
			{Value: "cat-a", Text: "Passengers"},
			{Value: "cat-b", Text: "Two Wheelers"},
		}, nil
	case selBrand:
		switch f.selections[selCategory] {
		case "cat-a":
			return []DropdownOption{
				prompt,
				{Value: "br-a1", Text: "MARUTI SUZUKI"},
				{Value: "br-a2", Text: "TATA"},
			}, nil
		case "cat-b":
			return []DropdownOption{
				prompt,
				{Value: "br-b1", Text: "HERO"},
				{Value: "br-b2", Text: "BAJAJ"},
			}, nil
		}
		return []DropdownOption{prompt}, nil
	case selModel:
		brand := f.selections[selBrand]
		if brand == "" || brand == f.emptyModelsFor {
			return []DropdownOption{prompt}, nil
		}
		return []DropdownOption{
			prompt,
			{Value: "mod-" + brand, Text: "Model " + brand},
		}, nil
	case selFuel:
		if f.selections[selModel] == "" {
			return []DropdownOption{prompt}, nil
		}
		return []DropdownOption{
			prompt,
			{Value: "petrol", Text: "Petrol"},
		}, nil
	}
	return nil, apperr.NewDOM("options", "unknown selector "+selector, nil)
}

func (f *fakeForm) HTML(_ context.Context) (string, error) { return "", nil }

func testDiscovererConfig() DiscovererConfig {
	return DiscovererConfig{
		LandingURL:       fakeLanding,
		CategorySelector: selCategory,
		BrandSelector:    selBrand,
		ModelSelector:    selModel,
		FuelSelector:     selFuel,
		SettleDelay:      4 * time.Millisecond,
		SettlePolls:      2,
	}
}

func TestDiscoverEnumeratesAllLeaves(t *testing.T) {
	form := newFakeForm()
	d := NewDiscoverer(form, testDiscovererConfig())

	combos, err := d.Discover(context.Background())
	require.NoError(t, err)

	want := []Combination{
		{Category: "Passengers", Brand: "MARUTI SUZUKI", Model: "Model br-a1", Fuel: "Petrol"},
		{Category: "Passengers", Brand: "TATA", Model: "Model br-a2", Fuel: "Petrol"},
		{Category: "Two Wheelers", Brand: "HERO", Model: "Model br-b1", Fuel: "Petrol"},
		{Category: "Two Wheelers", Brand: "BAJAJ", Model: "Model br-b2", Fuel: "Petrol"},
	}
	assert.Equal(t, want, combos)

	// One initial load plus one reload per non-first sibling at each level:
	// second brand of category A, second category, second brand of category B.
	assert.Equal(t, 4, d.LandingVisits())
	assert.Equal(t, 4, form.landingNavs)
}

func TestDiscoverSkipsEmptyBranch(t *testing.T) {
	form := newFakeForm()
	form.emptyModelsFor = "br-a2"
	d := NewDiscoverer(form, testDiscovererConfig())

	combos, err := d.Discover(context.Background())
	require.NoError(t, err)

	require.Len(t, combos, 3)
	for _, c := range combos {
		assert.NotEqual(t, "TATA", c.Brand)
	}
}

func TestDiscoverSkipsBranchOnSelectFailure(t *testing.T) {
	form := newFakeForm()
	form.failSelectVal = "br-b1"
	d := NewDiscoverer(form, testDiscovererConfig())

	combos, err := d.Discover(context.Background())
	require.NoError(t, err)

	require.Len(t, combos, 3)
	for _, c := range combos {
		assert.NotEqual(t, "HERO", c.Brand)
	}
}

func TestDiscoverLandingFailureIsFatal(t *testing.T) {
	form := newFakeForm()
	form.navErr = errors.New("net::ERR_CONNECTION_REFUSED")
	d := NewDiscoverer(form, testDiscovererConfig())

	combos, err := d.Discover(context.Background())
	assert.Nil(t, combos)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeNetwork, apperr.TypeOf(err))
}

func TestDiscoverHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDiscoverer(newFakeForm(), testDiscovererConfig())
	combos, err := d.Discover(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, combos)
}

func TestIsPlaceholder(t *testing.T) {
	cases := []struct {
		opt  DropdownOption
		want bool
	}{
		{DropdownOption{Value: "", Text: "anything"}, true},
		{DropdownOption{Value: "x", Text: "Select Brand"}, true},
		{DropdownOption{Value: "x", Text: "  choose a model"}, true},
		{DropdownOption{Value: "x", Text: "-- Fuel --"}, true},
		{DropdownOption{Value: "petrol", Text: "Petrol"}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, isPlaceholder(c.opt), c.opt.Text)
	}
}
