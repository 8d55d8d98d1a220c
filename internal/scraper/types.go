package scraper

import (
	"context"
	"time"
)

// Combination identifies one form-selectable product line: a category,
// vehicle brand, vehicle model and fuel variant as labeled by the source
// form. Immutable once produced.
type Combination struct {
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Fuel     string `json:"fuel"`
}

// DropdownOption is a single option read from a live select element.
// Ephemeral: read at traversal time, never persisted.
type DropdownOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Record is one extracted battery specification. Identity fields mirror the
// Combination that produced it; extracted fields default to "" when the page
// does not expose them.
type Record struct {
	Category     string `json:"category"`
	VehicleBrand string `json:"vehicle_brand"`
	VehicleModel string `json:"vehicle_model"`
	Fuel         string `json:"fuel"`
	URL          string `json:"url"`

	Title           string `json:"title,omitempty"`
	Brand           string `json:"brand,omitempty"`
	Series          string `json:"series,omitempty"`
	ItemCode        string `json:"item_code,omitempty"`
	BatteryModel    string `json:"battery_model,omitempty"`
	Voltage         string `json:"voltage,omitempty"`
	AmpereHour      string `json:"ampere_hour,omitempty"`
	Dimensions      string `json:"dimensions,omitempty"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	WarrantyTotal   string `json:"warranty_total,omitempty"`
	WarrantyFree    string `json:"warranty_free,omitempty"`
	WarrantyProRata string `json:"warranty_pro_rata,omitempty"`
	PriceMRP        string `json:"price_mrp,omitempty"`
	PriceBase       string `json:"price_base,omitempty"`
	PriceSpecial    string `json:"price_special,omitempty"`
}

// Header is the fixed CSV column order of the output sink.
func Header() []string {
	return []string{
		"category", "vehicle_brand", "vehicle_model", "fuel", "url",
		"title", "brand", "series", "item_code", "battery_model",
		"voltage", "ampere_hour", "dimensions", "country_of_origin",
		"image_url", "warranty_total", "warranty_free", "warranty_pro_rata",
		"price_mrp", "price_base", "price_special",
	}
}

// Row renders the record in Header order.
func (r *Record) Row() []string {
	return []string{
		r.Category, r.VehicleBrand, r.VehicleModel, r.Fuel, r.URL,
		r.Title, r.Brand, r.Series, r.ItemCode, r.BatteryModel,
		r.Voltage, r.AmpereHour, r.Dimensions, r.CountryOfOrigin,
		r.ImageURL, r.WarrantyTotal, r.WarrantyFree, r.WarrantyProRata,
		r.PriceMRP, r.PriceBase, r.PriceSpecial,
	}
}

// HasSubstance reports whether at least one substantive specification field
// is populated. Records carrying only identity fields are not worth keeping.
func (r *Record) HasSubstance() bool {
	return r.Voltage != "" || r.AmpereHour != "" || r.ItemCode != "" ||
		r.BatteryModel != "" || r.Dimensions != "" ||
		r.WarrantyTotal != "" || r.WarrantyFree != "" || r.WarrantyProRata != ""
}

// RunSummary aggregates run statistics. Single-threaded access only; it is
// owned by the orchestrator and never touched concurrently.
type RunSummary struct {
	Attempted  int
	Succeeded  int
	Failed     int
	Written    int
	Duplicates int
	Output     string
	OutputRows int
	OutputSize int64
	Duration   time.Duration
	Errors     []string
}

// AddError records a per-combination failure message.
func (s *RunSummary) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// Browser is the automation capability the discoverer and fetch path depend
// on. Selector arguments are comma-separated preference lists; an
// implementation tries each candidate in order. Implementations live in
// internal/browser; tests inject fakes.
type Browser interface {
	// Navigate loads url and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// Select sets the value of the first matching select element and fires
	// a bubbling change event so dependent dropdowns reload.
	Select(ctx context.Context, selector, value string) error
	// Options returns the option list of the first matching select element.
	Options(ctx context.Context, selector string) ([]DropdownOption, error)
	// HTML returns the rendered outer HTML of the current page.
	HTML(ctx context.Context) (string, error)
}
