package utils

import (
	"fmt"
	"time"
)

// FormatTime renders a backend timestamp for table output. Zero times show
// as a dash rather than the epoch.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatPrice renders an asset price with its currency code.
func FormatPrice(price float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}
