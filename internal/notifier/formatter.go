package notifier

import (
	"fmt"
	"strings"

	"PowerCast/internal/model"
)

var levelIcons = map[model.PriceLevel]string{
	model.PriceLow:      "🟢",
	model.PriceNormal:   "⚪",
	model.PriceHigh:     "🟠",
	model.PriceVeryHigh: "🔴",
}

// FormatPredictionReport formats a prediction run into a Telegram message.
func FormatPredictionReport(rec *model.PredictionRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚡ <b>PowerCast price forecast</b> | %s\n\n", rec.Generated.Format("2006-01-02 15:04")))

	for _, p := range rec.Predictions {
		b.WriteString(fmt.Sprintf("%s %s %s: %.1f €/MWh (%s)\n",
			levelIcons[p.PriceLevel], p.Date, p.DayName[:3], p.PredictedPrice, p.PriceLevel))
	}

	if expensive := expensiveDays(rec); len(expensive) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ High prices expected: %s\n", strings.Join(expensive, ", ")))
	}

	b.WriteString(fmt.Sprintf("\nModel: %s", rec.Model))
	return b.String()
}

// expensiveDays lists the dates classified HIGH or VERY_HIGH.
func expensiveDays(rec *model.PredictionRecord) []string {
	var days []string
	for _, p := range rec.Predictions {
		if p.PriceLevel == model.PriceHigh || p.PriceLevel == model.PriceVeryHigh {
			days = append(days, p.Date)
		}
	}
	return days
}
