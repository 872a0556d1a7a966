package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

var csvHeader = []string{"symbol", "date", "t", "o", "h", "l", "c", "v", "vw"}

// CSVWriter writes a header row followed by one row per bar.
type CSVWriter struct{}

func (CSVWriter) Extension() string   { return "csv" }
func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVWriter) Write(w io.Writer, rows []Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Symbol,
			r.Date,
			strconv.FormatInt(r.Timestamp, 10),
			formatFloat(r.Open),
			formatFloat(r.High),
			formatFloat(r.Low),
			formatFloat(r.Close),
			formatFloat(r.Volume),
			formatFloat(r.VWAP),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// JSONWriter writes a single JSON array.
type JSONWriter struct{}

func (JSONWriter) Extension() string   { return "json" }
func (JSONWriter) ContentType() string { return "application/json; charset=utf-8" }

func (JSONWriter) Write(w io.Writer, rows []Bar) error {
	if rows == nil {
		rows = []Bar{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ParquetWriter writes a parquet file with the Bar schema.
type ParquetWriter struct{}

func (ParquetWriter) Extension() string   { return "parquet" }
func (ParquetWriter) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetWriter) Write(w io.Writer, rows []Bar) error {
	return parquet.Write(w, rows)
}
