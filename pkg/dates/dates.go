// Package dates normalizes the date formats used across the list feeds and
// implements the date-period collapsing rule for the advanced OFAC XML.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// ParseListDate converts Treasury "02 Jan 2006"-style dates to ISO
// YYYY-MM-DD. Values that don't match (circa years, free text) pass
// through unchanged.
func ParseListDate(s string) string {
	t, err := time.Parse("2 Jan 2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// ParseAmericanDate converts m/d/yy or m/d/yyyy dates to ISO YYYY-MM-DD,
// passing unparseable values through unchanged.
func ParseAmericanDate(s string) string {
	layout := "1/2/2006"
	if parts := strings.Split(s, "/"); len(parts[len(parts)-1]) == 2 {
		layout = "1/2/06"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// Point is one calendar date boundary of a date period.
type Point struct {
	Year  int
	Month int
	Day   int
}

func (p Point) equal(o Point) bool {
	return p.Year == o.Year && p.Month == o.Month && p.Day == o.Day
}

// CollapsePeriod reduces a four-point date period to a scalar:
//
//   - all four points identical: that exact date as YYYY-MM-DD
//   - a clean Jan 1 through Dec 31 span of one year: the bare year
//   - anything else: no value (ok=false), the feature is dropped
//
// The silent drop of irregular and open-ended ranges is deliberate and
// lossy; callers must not turn it into an error.
func CollapsePeriod(startFrom, startTo, endFrom, endTo Point) (string, bool) {
	if startFrom.equal(startTo) && startTo.equal(endFrom) && endFrom.equal(endTo) {
		return fmt.Sprintf("%04d-%02d-%02d", startFrom.Year, startFrom.Month, startFrom.Day), true
	}
	if startFrom.equal(startTo) && endFrom.equal(endTo) &&
		startFrom.Year == endFrom.Year &&
		startFrom.Month == 1 && startFrom.Day == 1 &&
		endFrom.Month == 12 && endFrom.Day == 31 {
		return fmt.Sprintf("%d", startFrom.Year), true
	}
	return "", false
}
