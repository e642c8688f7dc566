package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"demand-forecaster/models"
)

// PrintRunReport formats and prints the run summary to terminal
func PrintRunReport(report *models.RunSummary) {
	FprintRunReport(os.Stdout, report)
}

// FprintRunReport writes the run summary to w
func FprintRunReport(w io.Writer, report *models.RunSummary) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("ELECTRICITY DEMAND FORECAST", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Observations scraped    : %d\n", report.Observations)
	fmt.Fprintf(w, "  Records predicted       : %d\n", report.Processed)
	fmt.Fprintf(w, "  Records skipped         : %d\n", report.Skipped)
	fmt.Fprintf(w, "  Kept in history (today) : %d\n", report.CurrentDay)

	if report.Processed > 0 {
		fmt.Fprintf(w, "\n LOAD\n%s\n", thin)
		fmt.Fprintf(w, "  Average load            : %.3f\n", report.AverageLoad)
		fmt.Fprintf(w, "  Minimum load            : %.3f\n", report.MinLoad)
		fmt.Fprintf(w, "  Maximum load            : %.3f\n", report.MaxLoad)
	}

	if report.Peak != nil {
		fmt.Fprintf(w, "\n PEAK HOUR\n%s\n", thin)
		fmt.Fprintf(w, "  Date      : %s (%s)\n", report.Peak.DateString(), report.Peak.Weekday)
		fmt.Fprintf(w, "  Time      : %s\n", report.Peak.TimeString())
		fmt.Fprintf(w, "  Load      : %.3f\n", report.Peak.Load)
		fmt.Fprintf(w, "  Weather   : %.1f°C, %s\n", report.Peak.Temperature, report.Peak.Condition)
		fmt.Fprintf(w, "  Day type  : %s\n", report.Peak.DayType.Label())
	}

	if len(report.RecordsByDate) > 0 {
		fmt.Fprintf(w, "\n RECORDS PER DATE\n%s\n", thin)
		dates := make([]string, 0, len(report.RecordsByDate))
		for d := range report.RecordsByDate {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool {
			return parseRecordDate(dates[i]).Before(parseRecordDate(dates[j]))
		})
		for _, d := range dates {
			n := report.RecordsByDate[d]
			fmt.Fprintf(w, "  %-12s %3d  %s\n", d+":", n, strings.Repeat("▓", n))
		}
	}

	if len(report.SkipReasons) > 0 {
		fmt.Fprintf(w, "\n SKIPPED BY REASON\n%s\n", thin)
		kinds := make([]string, 0, len(report.SkipReasons))
		for k := range report.SkipReasons {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-12s %3d\n", k+":", report.SkipReasons[k])
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func parseRecordDate(s string) time.Time {
	t, _ := time.Parse("02-01-2006", s)
	return t
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}
