package utils

import (
	"fmt"
	"time"
)

// All guest-facing wall-clock times are interpreted in the restaurant's
// fixed timezone.  Storage is always UTC; conversion happens at the edges.
const restaurantZone = "Europe/Amsterdam"

// DateLayout and BlockLayout are the wire formats for calendar dates and
// bookable time blocks.
const (
	DateLayout  = "2006-01-02"
	BlockLayout = "15:04"
)

var restaurantLoc *time.Location

func init() {
	loc, err := time.LoadLocation(restaurantZone)
	if err != nil {
		panic(fmt.Sprintf("load timezone %s: %v", restaurantZone, err))
	}
	restaurantLoc = loc
}

// RestaurantLocation returns the fixed restaurant timezone.
func RestaurantLocation() *time.Location {
	return restaurantLoc
}

// CombineDateBlock interprets a calendar date and a block time as a local
// wall clock in the restaurant timezone and returns the corresponding UTC
// instant.  The DST offset in effect on the given date is respected.
func CombineDateBlock(date, block string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+BlockLayout, date+" "+block, restaurantLoc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// LocalClock converts a stored instant back to the local wall-clock date
// and block it was booked under.  CombineDateBlock and LocalClock are
// symmetric across DST boundaries.
func LocalClock(t time.Time) (date, block string) {
	local := t.In(restaurantLoc)
	return local.Format(DateLayout), local.Format(BlockLayout)
}

// DayBounds returns the UTC instants that bound the given local calendar
// date, [start, end).  Used to filter reservations by restaurant day.
func DayBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, date, restaurantLoc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.UTC(), start.AddDate(0, 0, 1).UTC(), nil
}

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// FormatDutch renders an instant as the Dutch long form used in guest
// emails, e.g. "1 juni 2024 om 19:00", in the restaurant timezone.
func FormatDutch(t time.Time) string {
	local := t.In(restaurantLoc)
	return fmt.Sprintf("%d %s %d om %02d:%02d",
		local.Day(), dutchMonths[local.Month()-1], local.Year(), local.Hour(), local.Minute())
}
