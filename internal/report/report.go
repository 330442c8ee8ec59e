// Package report renders the aggregated evaluation records for the
// console.
package report

import (
	"fmt"

	"github.com/quantbyte/signalscan/models"
)

// Format creates a human-readable scorecard from evaluation records.
func Format(records []models.EvalRecord) string {
	if len(records) == 0 {
		return "No instruments produced results\n"
	}

	output := "\n===== SIGNAL EVALUATION =====\n"
	output += fmt.Sprintf("%-10s %-15s %9s %9s %10s %7s %9s\n",
		"SYMBOL", "ALGORITHM", "ACC", "CV ACC", "RETURN", "TRADES", "WIN RATE")

	for _, r := range records {
		output += fmt.Sprintf("%-10s %-15s %8.2f%% %8.2f%% %9.2f%% %7d %8.2f%%\n",
			r.Instrument,
			r.Algorithm,
			r.Accuracy*100,
			r.CVAccuracy*100,
			r.TotalReturnPct,
			r.NumTrades,
			r.WinRatePct,
		)
	}
	return output
}
