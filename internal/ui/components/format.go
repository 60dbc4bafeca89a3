// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with locale-aware grouping. The console is an
// internal back-office tool, so en-US grouping is fixed rather than
// sniffed from the environment.
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a monetary amount with its currency code, grouped
// thousands and two decimals: "USD 1,234,567.89". Empty currency renders
// the bare amount.
func FormatAmount(amount float64, currency string) string {
	formatted := printer.Sprintf("%.2f", amount)
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}

// FormatCount renders an integer with grouped thousands.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders a timestamp in the short form the tables use.
// Zero times render as a dash rather than the epoch.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04")
}
