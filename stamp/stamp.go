// Package stamp applies one shared capture timestamp to a finished
// batch of image files.
package stamp

import (
	"fmt"
	"strconv"
	"time"
)

// Layout is the timestamp layout used for image metadata, shared by the
// EXIF date tags and the stamping contract.
const Layout = "2006:01:02 15:04:05"

// Timestamp formats t for the metadata stamping step.
func Timestamp(t time.Time) string {
	return t.Format(Layout)
}

// ParseDate reads a YYYYMMDD override date: exactly 8 decimal digits,
// year in [1900,2100], month in [1,12], day in [1,31]. The day is not
// cross-checked against the month length; an impossible combination
// normalizes forward (20230231 becomes March 3rd). Time of day is fixed
// to local noon.
func ParseDate(s string) (time.Time, error) {
	if len(s) != 8 {
		return time.Time{}, fmt.Errorf("invalid date %q, should be YYYYMMDD", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("invalid date %q, should be YYYYMMDD", s)
		}
	}

	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:])

	switch {
	case year < 1900 || year > 2100:
		return time.Time{}, fmt.Errorf("invalid year in %q, should be 1900-2100", s)
	case month < 1 || month > 12:
		return time.Time{}, fmt.Errorf("invalid month in %q, should be 01-12", s)
	case day < 1 || day > 31:
		return time.Time{}, fmt.Errorf("invalid day in %q, should be 01-31", s)
	}

	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local), nil
}

// Stamper applies one capture timestamp, formatted per Layout, to every
// image file in a directory. An implementation must fail if it cannot
// stamp any one of the files.
type Stamper interface {
	Stamp(dir, timestamp string) error
}
