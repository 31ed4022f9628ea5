package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"campscan/config"
	"campscan/models"
	"campscan/scanner/ontarioparks"
	"campscan/services"
	"campscan/storage"
	"campscan/utils"
)

func main() {
	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("Ontario Parks Campground Availability Scanner")
	logger.Info("Concurrency: %d | Rate delay: %dms | Retries: %d | Rounds: %d",
		cfg.ScanConcurrency, cfg.RateLimitDelay, cfg.MaxRetries, cfg.MaxInteractions)

	params, err := buildSearchParams(cfg)
	if err != nil {
		logger.Error("Invalid search settings: %v", err)
		os.Exit(1)
	}
	logger.Info("Stay: %s -> %s (%d nights, party of %d)",
		params.Arrival.Format("2006-01-02"), params.Departure.Format("2006-01-02"),
		params.Nights(), params.PartySize)

	campgrounds, err := config.LoadCampgrounds(cfg)
	if err != nil {
		logger.Error("Cannot load campground list: %v", err)
		os.Exit(1)
	}
	logger.Info("Scanning %d campgrounds", len(campgrounds))

	// =============== Scanning ===================================
	scanner := ontarioparks.NewScanner(cfg, params, logger)
	results := scanner.ScanAll(context.Background(), campgrounds)

	records := flattenRecords(results)
	if len(records) == 0 {
		for _, res := range results {
			if res.Status == models.ScanFailed {
				logger.Warn("'%s': scan failed", res.Campground.Name)
			} else {
				logger.Warn("'%s': no availability found", res.Campground.Name)
			}
		}
		logger.Warn("No availability records extracted from any campground")
		os.Exit(0)
	}

	// ========= CSV export ===========================
	csvWriter := storage.NewCSVWriter(cfg.CSVFilePath, logger)
	if err := csvWriter.WriteRecords(records); err != nil {
		logger.Error("Failed to write CSV: %v", err)
		// Non-fatal: continue to archive and summary
	}

	// ========= Optional PostgreSQL archive ============
	if cfg.DatabaseURL != "" {
		if err := archiveRecords(cfg, records, logger); err != nil {
			logger.Error("Postgres archive failed: %v", err)
		}
	}

	// ==== Summary ============================
	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(results)
	services.PrintInsightReport(report)

	fmt.Println(" Done! Results →", cfg.CSVFilePath)
}

// buildSearchParams assembles and validates the run's search settings.
// Without configured dates it defaults to a two-night stay two weeks out,
// matching the platform's typical booking horizon.
func buildSearchParams(cfg *config.Config) (models.SearchParams, error) {
	arrival := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	departure := arrival.AddDate(0, 0, 2)

	var err error
	if cfg.ArrivalDate != "" {
		arrival, err = time.Parse("2006-01-02", cfg.ArrivalDate)
		if err != nil {
			return models.SearchParams{}, fmt.Errorf("bad ARRIVAL_DATE: %w", err)
		}
	}
	if cfg.DepartureDate != "" {
		departure, err = time.Parse("2006-01-02", cfg.DepartureDate)
		if err != nil {
			return models.SearchParams{}, fmt.Errorf("bad DEPARTURE_DATE: %w", err)
		}
	}

	params := models.SearchParams{
		Arrival:        arrival,
		Departure:      departure,
		PartySize:      cfg.PartySize,
		EquipmentID:    cfg.EquipmentID,
		SubEquipmentID: cfg.SubEquipmentID,
	}
	if !params.Arrival.Before(params.Departure) {
		return models.SearchParams{}, fmt.Errorf("arrival %s must be before departure %s",
			params.Arrival.Format("2006-01-02"), params.Departure.Format("2006-01-02"))
	}
	if params.PartySize < 1 {
		return models.SearchParams{}, fmt.Errorf("party size must be positive, got %d", params.PartySize)
	}
	return params, nil
}

// flattenRecords concatenates per-campground results into the flat export
// row set, preserving campground order then first-seen record order.
func flattenRecords(results []*models.ScanResult) []*models.AvailabilityRecord {
	var records []*models.AvailabilityRecord
	for _, res := range results {
		if res.Status == models.ScanFailed {
			continue
		}
		records = append(records, res.Records...)
	}
	return records
}

func archiveRecords(cfg *config.Config, records []*models.AvailabilityRecord, logger *utils.Logger) error {
	pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pgWriter.Close()

	if err := pgWriter.CreateTable(); err != nil {
		return err
	}
	return pgWriter.WriteRecords(records)
}
