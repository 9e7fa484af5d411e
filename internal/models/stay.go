package models

import "time"

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Stay is a half-open date interval [CheckIn, CheckOut).
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Overlaps reports whether two stays share at least one night. Touching
// boundaries (one ends the day the other starts) do not overlap.
func (s Stay) Overlaps(o Stay) bool {
	return s.CheckIn.Before(o.CheckOut) && s.CheckOut.After(o.CheckIn)
}

func (s Stay) Valid() bool {
	return s.CheckOut.After(s.CheckIn)
}

// Nights is the number of nights between check-in and check-out, counted
// in whole calendar days so very long ranges do not overflow a Duration.
func (s Stay) Nights() int {
	return int((s.CheckOut.Unix() - s.CheckIn.Unix()) / secondsPerDay)
}

func (s Stay) CheckInString() string  { return s.CheckIn.Format(DateLayout) }
func (s Stay) CheckOutString() string { return s.CheckOut.Format(DateLayout) }
