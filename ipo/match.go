package ipo

import (
	"strings"
	"time"

	"ipo-notifier/model"
)

const (
	MainboardTag = "Mainboard"
	NoneClosing  = "No mainline IPO closes today"
	closeSuffix  = " close today"
)

// Match returns the mainboard IPOs whose issue closes on today's calendar
// date, in provider order. Records are not modified.
func Match(items []model.IPO, today time.Time) []model.Match {
	formatted := FormatDate(today)

	var matches []model.Match
	for _, item := range items {
		if !strings.Contains(item.TypeTag, MainboardTag) {
			continue
		}
		if !closesOn(item.IssueEndDate, today, formatted) {
			continue
		}
		matches = append(matches, model.Match{
			Name:      strings.TrimSpace(item.Name),
			StartDate: item.IssueStartDate,
			EndDate:   item.IssueEndDate,
		})
	}
	return matches
}

func closesOn(endDate string, today time.Time, formatted string) bool {
	if d, ok := parseDate(endDate); ok {
		return sameDay(d, today)
	}
	// decorated dates such as "5 Mar 2025 (5 PM)"; "15 Mar 2025" and "5 Mar 20250" must not match "5 Mar 2025"
	for i := 0; i <= len(endDate)-len(formatted); i++ {
		if endDate[i:i+len(formatted)] != formatted {
			continue
		}
		end := i + len(formatted)
		if (i == 0 || !isDigit(endDate[i-1])) && (end == len(endDate) || !isDigit(endDate[end])) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Format builds the ntfy title and body for a match set.
func Format(matches []model.Match) (title, body string) {
	if len(matches) == 0 {
		return NoneClosing, NoneClosing
	}

	names := make([]string, 0, len(matches))
	var b strings.Builder
	for _, m := range matches {
		names = append(names, m.Name)
		b.WriteString(m.Name)
		b.WriteString(" - ")
		b.WriteString(m.StartDate)
		b.WriteString("-")
		b.WriteString(m.EndDate)
		b.WriteString("\n")
	}
	return strings.Join(names, ", ") + closeSuffix, b.String()
}
