// Package timezone keeps every timestamp of the service in one configured location.
//
//	now := timezone.Now()                         // current time in APP_TIMEZONE
//	formatted := timezone.Format(t, time.RFC3339) // render in APP_TIMEZONE
//	t, err := timezone.Parse(time.DateTime, s)    // parse in APP_TIMEZONE
//
// Calendar dates (check-in, availability days, package start dates) are not instants and
// are handled separately:
//
//	checkIn, err := timezone.ParseDate("2025-01-10")
//	nights := timezone.DaysBetween(checkIn, checkOut)
//
// The location is read from APP_TIMEZONE when the package is imported; unknown names fall
// back to UTC.
package timezone
