package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
// All business dates (delivery days, payment dates) are IST calendar days.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// ParseDate parses a YYYY-MM-DD string as an IST calendar day
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// StartOfDay returns the start of day (00:00:00) in IST for the given time
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// SameDay reports whether a and b fall on the same IST calendar day.
// Deliveries are matched to a route date this way, never by absolute
// timestamp, so a 23:30 UTC row does not leak into the next day's route.
func SameDay(a, b time.Time) bool {
	ai, bi := a.In(IST), b.In(IST)
	return ai.Year() == bi.Year() && ai.Month() == bi.Month() && ai.Day() == bi.Day()
}

// DaysBetween returns the number of whole calendar days from a to b in IST.
// Negative if b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// Common layouts for IST formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
