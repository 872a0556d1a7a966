// Package export writes daily bar history to csv, json or parquet.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stockfeed/internal/provider"
)

// Bar is the flat row written by every format.
type Bar struct {
	Symbol    string  `json:"symbol" parquet:"symbol,dict"`
	Date      string  `json:"date" parquet:"date"`
	Timestamp int64   `json:"t" parquet:"t"`
	Open      float64 `json:"o" parquet:"o"`
	High      float64 `json:"h" parquet:"h"`
	Low       float64 `json:"l" parquet:"l"`
	Close     float64 `json:"c" parquet:"c"`
	Volume    float64 `json:"v,omitempty" parquet:"v,optional"`
	VWAP      float64 `json:"vw,omitempty" parquet:"vw,optional"`
}

// Rows flattens bars for symbol. Missing volume and vwap become 0.
func Rows(symbol string, bars []provider.DailyBar) []Bar {
	out := make([]Bar, 0, len(bars))
	for _, b := range bars {
		r := Bar{
			Symbol:    symbol,
			Date:      b.Time().Format("2006-01-02"),
			Timestamp: b.TimestampMillis,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
		}
		if b.Volume != nil {
			r.Volume = *b.Volume
		}
		if b.VWAP != nil {
			r.VWAP = *b.VWAP
		}
		out = append(out, r)
	}
	return out
}

// Writer encodes rows in one format.
type Writer interface {
	Extension() string
	ContentType() string
	Write(w io.Writer, rows []Bar) error
}

// New returns the writer for format (csv, json, parquet), or nil.
func New(format string) Writer {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVWriter{}
	case "json":
		return JSONWriter{}
	case "parquet":
		return ParquetWriter{}
	default:
		return nil
	}
}

// ForPath picks the writer from format, or from path's extension when
// format is empty.
func ForPath(path, format string) (Writer, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	w := New(format)
	if w == nil {
		return nil, fmt.Errorf("unsupported export format %q (use: csv, json, parquet)", format)
	}
	return w, nil
}

// Save writes rows to path using w.
func Save(path string, w Writer, rows []Bar) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := w.Write(f, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
