package scraper

// markerTokens gate extraction: a page whose visible text contains none of
// these is an error/placeholder page that happens to return HTTP 200, and
// must not be mined for fields.
var markerTokens = []string{
	"voltage (v)",
	"amphere hour",
	"ampere hour",
	"warranty",
	"battery brand",
}

// fieldSpec declares one target field: the ordered candidate labels the
// row scan matches against (case-insensitive substring, first match wins)
// and the setter that attaches the value to the record.
type fieldSpec struct {
	name   string
	labels []string
	assign func(r *Record, v string)
}

// fieldTable drives the generic row-scan extraction routine. Order matters
// only for readability; every spec is independent.
var fieldTable = []fieldSpec{
	{
		name:   "brand",
		labels: []string{"battery brand", "brand"},
		assign: func(r *Record, v string) { r.Brand = v },
	},
	{
		name:   "series",
		labels: []string{"battery series", "series"},
		assign: func(r *Record, v string) { r.Series = v },
	},
	{
		name:   "item_code",
		labels: []string{"item code", "item no", "product code", "sku"},
		assign: func(r *Record, v string) { r.ItemCode = v },
	},
	{
		name:   "battery_model",
		labels: []string{"battery model", "model no"},
		assign: func(r *Record, v string) { r.BatteryModel = v },
	},
	{
		name:   "voltage",
		labels: []string{"voltage (v)", "voltage"},
		assign: func(r *Record, v string) { r.Voltage = v },
	},
	{
		name:   "ampere_hour",
		labels: []string{"ref. amphere hour", "amphere hour", "ampere hour", "capacity (ah)", "capacity"},
		assign: func(r *Record, v string) { r.AmpereHour = v },
	},
	{
		name:   "dimensions",
		labels: []string{"dimensions (l x w x h)", "dimensions", "dimension"},
		assign: func(r *Record, v string) { r.Dimensions = v },
	},
	{
		name:   "country_of_origin",
		labels: []string{"country of origin", "origin"},
		assign: func(r *Record, v string) { r.CountryOfOrigin = v },
	},
	{
		name:   "warranty_total",
		labels: []string{"total warranty", "warranty (months)", "warranty period"},
		assign: func(r *Record, v string) { r.WarrantyTotal = v },
	},
	{
		name:   "warranty_free",
		labels: []string{"free warranty", "free of cost warranty", "foc warranty"},
		assign: func(r *Record, v string) { r.WarrantyFree = v },
	},
	{
		name:   "warranty_pro_rata",
		labels: []string{"pro-rata warranty", "pro rata warranty", "pro-rata"},
		assign: func(r *Record, v string) { r.WarrantyProRata = v },
	},
	{
		name:   "price_mrp",
		labels: []string{"mrp", "total price", "maximum retail price"},
		assign: func(r *Record, v string) { r.PriceMRP = v },
	},
	{
		name:   "price_base",
		labels: []string{"base price", "battery price"},
		assign: func(r *Record, v string) { r.PriceBase = v },
	},
	{
		name:   "price_special",
		labels: []string{"special discount", "special price", "discount"},
		assign: func(r *Record, v string) { r.PriceSpecial = v },
	},
	{
		name:   "title",
		labels: []string{"product title", "battery name", "product name"},
		assign: func(r *Record, v string) { r.Title = v },
	},
}

// secondaryDimensionLabels are accepted only when the primary dimension row
// was absent; some layouts publish container size instead.
var secondaryDimensionLabels = []string{"container size", "container dimensions"}
