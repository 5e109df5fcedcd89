package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	crore = 1e7
	lakh  = 1e5
)

var currencyMarker = regexp.MustCompile(`(?i)₹|inr|rs\.?`)

// Excel counts days from 1899-12-30; serials outside this window are treated
// as plain numbers rather than dates.
var (
	excelEpoch     = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	excelSerialMin = 20000.0
	excelSerialMax = 60000.0
)

// dateLayouts are tried in order after the Excel serial check.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

const isoDate = "2006-01-02"

// Currency parses an INR amount such as "₹12,34,567", "INR 2.5 Cr" or
// "3 Lakh". Crore and lakh suffixes are expanded.
func Currency(raw string) (float64, bool) {
	if IsNull(raw) {
		return 0, false
	}
	s := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	s = currencyMarker.ReplaceAllString(s, "")

	multiplier := 1.0
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "cr"):
		multiplier, s = crore, s[:len(s)-2]
	case strings.HasSuffix(lower, "lakh"):
		multiplier, s = lakh, s[:len(s)-4]
	case strings.HasSuffix(lower, "l") && !strings.HasSuffix(lower, "null"):
		multiplier, s = lakh, s[:len(s)-1]
	}

	v, ok := parseFloat(s)
	if !ok {
		return 0, false
	}
	return v * multiplier, true
}

// Number parses a plain number, ignoring thousands separators and a trailing
// percent sign.
func Number(raw string) (float64, bool) {
	if IsNull(raw) {
		return 0, false
	}
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	s = strings.TrimSpace(strings.TrimRight(s, "%"))
	return parseFloat(s)
}

// Date normalizes a board date to YYYY-MM-DD. Excel serial day counts are
// recognised before the calendar layouts.
func Date(raw string) (string, bool) {
	if IsNull(raw) {
		return "", false
	}
	s := strings.TrimSpace(raw)

	if serial, ok := parseFloat(s); ok && serial > excelSerialMin && serial < excelSerialMax {
		d := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
		return d.Format(isoDate), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), true
		}
	}
	return "", false
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
