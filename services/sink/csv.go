package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"batteryspec/worker/internal/scraper"
	apperr "batteryspec/worker/pkg/errors"
)

// CSVSink writes one row per accepted record, flushing after every append
// so an interrupted run leaves a readable file with no truncated row.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
	rows   int
	size   int64
	closed bool
}

var _ Sink = (*CSVSink)(nil)

// NewCSVSink creates the output file and writes the header row. Failure is
// fatal to the run: no data collection is meaningful without the sink.
func NewCSVSink(path string) (*CSVSink, error) {
	if err := ensureDir(path); err != nil {
		return nil, apperr.NewSink("init", "failed to create output directory", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, apperr.NewSink("init", fmt.Sprintf("failed to create %s", path), err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(scraper.Header()); err != nil {
		f.Close()
		return nil, apperr.NewSink("init", "failed to write header", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, apperr.NewSink("init", "failed to flush header", err)
	}

	return &CSVSink{file: f, writer: writer}, nil
}

// Append writes and flushes one record.
func (s *CSVSink) Append(record *scraper.Record) error {
	if s.closed {
		return apperr.NewSink("append", "sink already finalized", nil)
	}
	if err := s.writer.Write(record.Row()); err != nil {
		return apperr.NewSink("append", "failed to write record", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return apperr.NewSink("append", "failed to flush record", err)
	}
	s.rows++
	return nil
}

// Finalize flushes, closes the file and reports row count and byte size.
// Idempotent: a second call returns the same figures.
func (s *CSVSink) Finalize() (int, int64, error) {
	if !s.closed {
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			return s.rows, 0, apperr.NewSink("finalize", "failed to flush", err)
		}
		s.closed = true

		info, err := s.file.Stat()
		if err != nil {
			s.file.Close()
			return s.rows, 0, apperr.NewSink("finalize", "failed to stat output", err)
		}
		size := info.Size()
		if err := s.file.Close(); err != nil {
			return s.rows, size, apperr.NewSink("finalize", "failed to close output", err)
		}
		s.size = size
	}
	return s.rows, s.size, nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
