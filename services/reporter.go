package services

import (
	"fmt"
	"sort"
)

// PrintInsightReport renders the run summary to stdout
func PrintInsightReport(r *InsightReport) {
	fmt.Println()
	fmt.Println("========== Scan Summary ==========")
	fmt.Printf("Scans:    %d ok, %d partial, %d failed\n", r.ScansOK, r.ScansPartial, r.ScansFailed)
	fmt.Printf("Records:  %d total (%d available, %d unavailable, %d unknown)\n",
		r.TotalRecords, r.Available, r.Unavailable, r.Unknown)

	if len(r.ByCampground) > 0 {
		fmt.Println("\nRecords per campground:")
		names := make([]string, 0, len(r.ByCampground))
		for name := range r.ByCampground {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-40s %d\n", name, r.ByCampground[name])
		}
	}

	if r.PricedRecords > 0 {
		fmt.Printf("\nPrices:   %d priced rows, min $%.2f, avg $%.2f\n",
			r.PricedRecords, r.MinPrice, r.AveragePrice)
		if r.Cheapest != nil {
			fmt.Printf("Cheapest: %s site %s at $%.2f\n",
				r.Cheapest.Campground, r.Cheapest.Site, *r.Cheapest.Price)
		}
	}
	fmt.Println("==================================")
}
