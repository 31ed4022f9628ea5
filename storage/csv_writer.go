package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"campscan/models"
	"campscan/utils"
)

// csvHeader fixes the export column order.
var csvHeader = []string{
	"campground", "site", "arrival", "departure",
	"price", "currency", "status", "raw_text",
}

// CSVWriter handles writing availability records to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteRecords writes the flattened record set to the CSV file
func (w *CSVWriter) WriteRecords(records []*models.AvailabilityRecord) error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		if err := writer.Write(recordRow(r)); err != nil {
			w.logger.Error("Failed to write CSV row for site '%s': %v", r.Site, err)
		}
	}

	w.logger.Info("Availability written to: %s (%d rows)", w.filePath, len(records))
	return nil
}

func dateCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func recordRow(r *models.AvailabilityRecord) []string {
	price := ""
	if r.Price != nil {
		price = strconv.FormatFloat(*r.Price, 'f', 2, 64)
	}
	return []string{
		r.Campground,
		r.Site,
		dateCell(r.Arrival),
		dateCell(r.Departure),
		price,
		r.Currency,
		string(r.Status),
		r.RawText,
	}
}
