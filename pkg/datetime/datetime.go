// Package datetime provides the time handling used by notification reports.
// Timestamps are stored as Unix epochs and rendered in US Eastern time.
package datetime

import (
	"fmt"
	"time"
)

// eastern is resolved once. time.LoadLocation reads the embedded tzdata on
// standard builds, so a failure here means a broken environment.
var eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(fmt.Sprintf("load US Eastern location: %v", err))
	}
	return loc
}

// Eastern converts a Unix epoch (seconds) to US Eastern time.
func Eastern(epoch int64) time.Time {
	return time.Unix(epoch, 0).In(eastern)
}

// OrdinalSuffix returns the English suffix for a day of month:
// 1st, 2nd, 3rd, 4th, ... 11th, 12th, 13th, ... 21st, 22nd, 23rd.
func OrdinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatReportTime renders an epoch the way notification reports expect,
// e.g. "Jan 3rd 09:31 AM ET".
func FormatReportTime(epoch int64) string {
	t := Eastern(epoch)
	return fmt.Sprintf("%s %d%s %s ET",
		t.Format("Jan"),
		t.Day(),
		OrdinalSuffix(t.Day()),
		t.Format("03:04 PM"),
	)
}
