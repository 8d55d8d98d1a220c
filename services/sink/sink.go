package sink

import "batteryspec/worker/internal/scraper"

// Sink accepts de-duplicated records and persists them. Append is called
// once per accepted record as it is discovered, so partial results survive
// a mid-run failure; Finalize reports the written row count and byte size.
type Sink interface {
	Append(record *scraper.Record) error
	Finalize() (rows int, bytes int64, err error)
}
