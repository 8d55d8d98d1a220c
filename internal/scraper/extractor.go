package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"batteryspec/worker/helpers"
	"batteryspec/worker/logger"

	"github.com/PuerkitoBio/goquery"
)

// currencyRe matches the first rupee-formatted amount inside a price element.
var currencyRe = regexp.MustCompile(`(?:₹|Rs\.?|INR)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// price tier styling classes, per the source page's markup
const (
	priceContainerSelector = ".price-box, .product-price, .price-details"
	priceTotalClass        = "fw-bolder"
	priceBaseClass         = "fw-bold"
)

// imageSelector locates the product image, preferring the dedicated product
// shot over incidental imagery.
const imageSelector = ".product-image img, img.product-img, .battery-image img"

// labelValue is one row-like label/value pair harvested from the page.
type labelValue struct {
	label string
	value string
}

// Extractor reads specification fields out of a rendered product page.
// Stateless; safe to share across combinations.
type Extractor struct {
	log *logger.Logger
}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{log: logger.ForComponent("extractor")}
}

// Extract parses the rendered page and returns zero or more records for the
// combination. A missing field is a valid outcome and never an error; the
// only hard gate is the marker-token check that rejects placeholder pages.
func (e *Extractor) Extract(html string, c Combination, pageURL string) []*Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.log.Warn().Err(err).Str("url", pageURL).Msg("Failed to parse page HTML")
		return nil
	}

	if !e.hasMarker(doc) {
		e.log.Debug().Str("url", pageURL).Msg("No domain markers on page, skipping extraction")
		return nil
	}

	rec := &Record{
		Category:     c.Category,
		VehicleBrand: c.Brand,
		VehicleModel: c.Model,
		Fuel:         c.Fuel,
		URL:          pageURL,
	}

	pairs := collectPairs(doc)

	for _, spec := range fieldTable {
		if v := lookupField(pairs, spec.labels); v != "" {
			spec.assign(rec, helpers.CleanText(v))
		}
	}

	// Secondary dimension label only fills a hole left by the primary.
	if rec.Dimensions == "" {
		rec.Dimensions = helpers.CleanText(lookupField(pairs, secondaryDimensionLabels))
	}

	e.extractPrices(doc, rec)
	e.extractImage(doc, rec)
	synthesize(rec)

	if !rec.HasSubstance() {
		e.log.Debug().Str("url", pageURL).Msg("Record has no substantive fields, discarding")
		return nil
	}

	return []*Record{rec}
}

// hasMarker checks the gate condition against the page's visible text.
func (e *Extractor) hasMarker(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Text())
	for _, token := range markerTokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// collectPairs harvests label/value pairs from every row-like structure the
// source layouts use: table rows, definition lists, labeled spec rows and
// colon-separated list items.
func collectPairs(doc *goquery.Document) []labelValue {
	var pairs []labelValue

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() >= 2 {
			pairs = append(pairs, labelValue{
				label: cells.Eq(0).Text(),
				value: cells.Eq(1).Text(),
			})
		}
	})

	doc.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		terms := dl.Find("dt")
		defs := dl.Find("dd")
		n := terms.Length()
		if defs.Length() < n {
			n = defs.Length()
		}
		for i := 0; i < n; i++ {
			pairs = append(pairs, labelValue{
				label: terms.Eq(i).Text(),
				value: defs.Eq(i).Text(),
			})
		}
	})

	doc.Find(".spec-row").Each(func(_ int, row *goquery.Selection) {
		label := row.Find(".spec-label").Text()
		value := row.Find(".spec-value").Text()
		if label != "" {
			pairs = append(pairs, labelValue{label: label, value: value})
		}
	})

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		if li.Children().Length() > 0 {
			return
		}
		text := li.Text()
		if idx := strings.Index(text, ":"); idx > 0 {
			pairs = append(pairs, labelValue{
				label: text[:idx],
				value: text[idx+1:],
			})
		}
	})

	return pairs
}

// lookupField returns the value of the first pair whose label contains any
// candidate, candidates tried in order. First match wins; later rows with
// the same label are ignored.
func lookupField(pairs []labelValue, candidates []string) string {
	for _, candidate := range candidates {
		want := strings.ToLower(candidate)
		for _, p := range pairs {
			if strings.Contains(strings.ToLower(p.label), want) {
				return p.value
			}
		}
	}
	return ""
}

// extractPrices fills any price tier the row scan missed by scanning the
// known price container and disambiguating tiers by their styling class.
func (e *Extractor) extractPrices(doc *goquery.Document, rec *Record) {
	if rec.PriceMRP != "" && rec.PriceBase != "" && rec.PriceSpecial != "" {
		return
	}

	doc.Find(priceContainerSelector).Find("span, div, p").Each(func(_ int, el *goquery.Selection) {
		if el.Children().Length() > 0 {
			return
		}
		m := currencyRe.FindStringSubmatch(el.Text())
		if m == nil {
			return
		}
		amount := m[1]
		switch {
		case el.HasClass(priceTotalClass):
			if rec.PriceMRP == "" {
				rec.PriceMRP = amount
			}
		case el.HasClass(priceBaseClass):
			if rec.PriceBase == "" {
				rec.PriceBase = amount
			}
		default:
			if rec.PriceSpecial == "" {
				rec.PriceSpecial = amount
			}
		}
	})
}

// extractImage records the first usable product image reference.
func (e *Extractor) extractImage(doc *goquery.Document, rec *Record) {
	if rec.ImageURL != "" {
		return
	}
	doc.Find(imageSelector).EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
			rec.ImageURL = strings.TrimSpace(src)
			return false
		}
		return true
	})
}

// synthesize derives composite fields when direct extraction came up empty.
func synthesize(rec *Record) {
	if rec.BatteryModel == "" && rec.Voltage != "" && rec.AmpereHour != "" {
		rec.BatteryModel = fmt.Sprintf("%sV %sAH", rec.Voltage, rec.AmpereHour)
	}

	if rec.Title == "" {
		parts := make([]string, 0, 3)
		for _, p := range []string{rec.Series, rec.BatteryModel, rec.ItemCode} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		rec.Title = strings.Join(parts, " ")
	}
}
