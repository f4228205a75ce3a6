package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts seen in the legacy CSV exports.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
}

// row is a header-keyed view of one CSV record.
type row map[string]string

func (r row) get(key, fallback string) string {
	if v := strings.TrimSpace(r[key]); v != "" {
		return v
	}
	return fallback
}

func (r row) getInt(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r[key]), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func (r row) getFloat(key string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r[key]), 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func (r row) getTime(key string, fallback time.Time) time.Time {
	raw := strings.TrimSpace(r[key])
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC()
		}
	}
	return fallback
}

// loadCSV reads the named file from the data directory and returns its
// records keyed by the header row.
func loadCSV(dir, filename string) ([]row, error) {
	f, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, validated per-field

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		r := make(row, len(header))
		for i, key := range header {
			if i < len(rec) {
				r[strings.TrimSpace(key)] = rec[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}
