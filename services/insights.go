package services

import (
	"campscan/models"
	"campscan/utils"
)

// InsightReport summarizes one scan run across all campgrounds.
type InsightReport struct {
	TotalRecords int
	Available    int
	Unavailable  int
	Unknown      int

	ByCampground map[string]int

	PricedRecords int
	MinPrice      float64
	AveragePrice  float64
	Cheapest      *models.AvailabilityRecord

	ScansOK      int
	ScansPartial int
	ScansFailed  int
}

// InsightService computes run-level analytics from scan results
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes an InsightReport from the full set of scan results
func (s *InsightService) Generate(results []*models.ScanResult) *InsightReport {
	report := &InsightReport{
		ByCampground: make(map[string]int),
	}

	var priceSum float64
	for _, res := range results {
		switch res.Status {
		case models.ScanSuccess:
			report.ScansOK++
		case models.ScanPartial:
			report.ScansPartial++
		case models.ScanFailed:
			report.ScansFailed++
		}

		for _, rec := range res.Records {
			report.TotalRecords++
			report.ByCampground[rec.Campground]++

			switch rec.Status {
			case models.StatusAvailable:
				report.Available++
			case models.StatusUnavailable:
				report.Unavailable++
			default:
				report.Unknown++
			}

			if rec.Price == nil {
				continue
			}
			report.PricedRecords++
			priceSum += *rec.Price
			if report.Cheapest == nil || *rec.Price < *report.Cheapest.Price {
				report.Cheapest = rec
				report.MinPrice = *rec.Price
			}
		}
	}

	if report.PricedRecords > 0 {
		report.AveragePrice = priceSum / float64(report.PricedRecords)
	}

	s.logger.Info("Generated insights for %d records across %d scans", report.TotalRecords, len(results))
	return report
}
