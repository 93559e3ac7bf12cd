package ipo

import (
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatDate renders t as "5 Mar 2025": no zero padding, English month abbreviation.
func FormatDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + monthNames[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// parseDate accepts "5 Mar 2025" and "05 Mar 2025".
func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse("2 Jan 2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
