package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/dashboard"
	"sustainability_dashboard/internal/ingest"
	"sustainability_dashboard/internal/metrics"
	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/store"
)

func main() {
	cfg := config.Load()

	studerDir := flag.String("studer-dir", cfg.StuderDir, "directory containing Studer CSV exports")
	start := flag.String("start", "", "first day to include (YYYY-MM-DD)")
	end := flag.String("end", "", "last day to include (YYYY-MM-DD)")
	csvOut := flag.String("csv-out", "", "optional CSV output for per-column statistics")
	flag.Parse()

	t, err := ingest.LoadStuderDir(*studerDir, ingest.NewStuderParser(cfg.Columns.StuderLayout))
	if err != nil {
		log.Fatalf("Failed to load Studer data: %v", err)
	}

	dataStore := store.New()
	dataStore.Put(model.DatasetStuder, t)

	svc, err := dashboard.NewService(dataStore, cfg, nil)
	if err != nil {
		log.Fatalf("Failed to create dashboard service: %v", err)
	}

	view, err := dashboard.ViewFromDates(model.DatasetStuder, *start, *end)
	if err != nil {
		log.Fatalf("Invalid date range: %v", err)
	}

	r, err := svc.GridReport(view)
	if err != nil {
		log.Fatalf("Failed to compute grid report: %v", err)
	}

	printReport(r)

	if *csvOut != "" {
		writeStatsCSV(r, *csvOut)
	}
}

func printReport(r dashboard.GridReport) {
	fmt.Println()
	fmt.Println("Grid Reliability Report")
	if r.Rows > 0 {
		fmt.Printf("  Data: %s to %s (%d days, %d rows)\n",
			r.Range.Start.Format("2006-01-02 15:04"), r.Range.End.Format("2006-01-02 15:04"), r.Range.Days(), r.Rows)
	} else {
		fmt.Println("  No rows in range")
	}
	fmt.Println()

	fmt.Println("  Voltage")
	fmt.Printf("    Load shedding instances:    %d\n", r.Voltage.LoadSheddingInstances)
	printDays("Load shedding days", r.Voltage.LoadSheddingDays)
	fmt.Printf("    Long duration variations:   %d\n", r.Voltage.LongDurationVoltageVariation)
	fmt.Printf("    Uptime:                     %.2f%%\n", r.Voltage.UptimePercentage)
	fmt.Println()

	fmt.Println("  Frequency")
	fmt.Printf("    Wrong frequency instances:  %d\n", r.Frequency.WrongFrequencyInstances)
	printDays("Wrong frequency days", r.Frequency.WrongFrequencyDays)
	fmt.Printf("    Power frequency variations: %d\n", r.Frequency.PowerFrequencyVariation)
	fmt.Println()

	fmt.Println("  Grid connection")
	fmt.Printf("    Disconnected instances:     %d\n", r.GridConnection.DisconnectedInstances)
	printDays("Disconnected days", r.GridConnection.DisconnectedDays)
	fmt.Println()

	fmt.Println("  Battery")
	fmt.Printf("    Average SOC:                %.1f%%\n", r.Battery.AverageSOC)
	printDays("Drain days", r.Battery.DrainDays)
	fmt.Println()

	fmt.Println("  Grid import/export")
	fmt.Printf("    Total export:               %.1f\n", r.GridImpex.Totals.TotalExport)
	fmt.Printf("    Per phase:                  L1 %.1f  L2 %.1f  L3 %.1f\n",
		r.GridImpex.Totals.L1, r.GridImpex.Totals.L2, r.GridImpex.Totals.L3)
	fmt.Printf("    Export rows:                %d of %d (%.1f%%)\n",
		r.GridImpex.Efficiency.ExportInstances,
		r.Rows,
		r.GridImpex.Efficiency.Efficiency*100)
	fmt.Println()
}

func printDays(label string, d metrics.DayCompliance) {
	fmt.Printf("    %-28s%d bad / %d good of %d (%.2f)\n", label+":", d.BadDays, d.GoodDays, d.TotalDays, d.Efficiency)
}

func writeStatsCSV(r dashboard.GridReport, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"section", "column", "min", "max", "mean", "std", "sum", "count", "total_instances"})

	sections := []struct {
		name  string
		stats []metrics.ColumnStats
	}{
		{"voltage", r.Voltage.Stats},
		{"frequency", r.Frequency.Stats},
		{"battery", r.Battery.Stats},
		{"grid_impex", r.GridImpex.Stats},
	}
	for _, sec := range sections {
		for _, s := range sec.stats {
			w.Write([]string{
				sec.name,
				s.Column,
				formatFloat(s.Min),
				formatFloat(s.Max),
				formatFloat(s.Mean),
				formatFloat(s.StdDev),
				formatFloat(s.Sum),
				strconv.Itoa(s.Count),
				strconv.Itoa(s.TotalInstances),
			})
		}
	}
	log.Printf("Statistics written to %s", path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
