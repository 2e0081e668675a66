// BACnet date and time utilities.
//
// The BACnet calendar epoch is 1900-01-01, a Monday. Day-of-week values
// follow the BACnet convention: Monday is 1, Sunday is 7.

package bacdt

const (
	EpochYear = 1900

	// Days between 1900-01-01 and the Unix epoch, 1970-01-01.
	unixEpochDays = 25567

	secondsPerDay = 86400
)

// Weekday values, Monday through Sunday.
const (
	Monday uint8 = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

type Date struct {
	Year    uint16 // full year, e.g. 2024
	Month   uint8  // 1..12
	Day     uint8  // 1..31
	WeekDay uint8  // 1..7, Monday = 1
}

type Time struct {
	Hour       uint8 // 0..23
	Minute     uint8 // 0..59
	Second     uint8 // 0..59
	Hundredths uint8 // 0..99
}

type DateTime struct {
	Date Date
	Time Time
}

func NewDate(year uint16, month, day uint8) Date {
	return Date{
		Year:    year,
		Month:   month,
		Day:     day,
		WeekDay: DayOfWeek(year, month, day),
	}
}

func NewTime(hour, minute, second, hundredths uint8) Time {
	return Time{
		Hour:       hour,
		Minute:     minute,
		Second:     second,
		Hundredths: hundredths,
	}
}

func NewDateTime(year uint16, month, day, hour, minute, second uint8) DateTime {
	return DateTime{
		Date: NewDate(year, month, day),
		Time: NewTime(hour, minute, second, 0),
	}
}

func IsLeapYear(year uint16) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

// MonthDays returns the number of days in the given month, or 0 if the
// month is invalid.
func MonthDays(year uint16, month uint8) uint8 {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// DaysSinceEpoch returns the number of days from 1900-01-01 to the given
// date; the epoch itself is day 0. The date must be valid.
func DaysSinceEpoch(year uint16, month, day uint8) uint32 {
	days := uint32(0)
	for y := uint16(EpochYear); y < year; y++ {
		if IsLeapYear(y) {
			days += 366
		} else {
			days += 365
		}
	}
	days += DayOfYear(year, month, day) - 1
	return days
}

// DateFromDaysSinceEpoch is the inverse of DaysSinceEpoch.
func DateFromDaysSinceEpoch(days uint32) Date {
	year := uint16(EpochYear)
	for {
		yd := uint32(365)
		if IsLeapYear(year) {
			yd = 366
		}
		if days < yd {
			break
		}
		days -= yd
		year++
	}
	month := uint8(1)
	for {
		md := uint32(MonthDays(year, month))
		if days < md {
			break
		}
		days -= md
		month++
	}
	return NewDate(year, month, uint8(days)+1)
}

// DayOfYear returns the ordinal day within the year, 1..366.
func DayOfYear(year uint16, month, day uint8) uint32 {
	days := uint32(day)
	for m := uint8(1); m < month; m++ {
		days += uint32(MonthDays(year, m))
	}
	return days
}

// DayOfWeek returns the BACnet day of week, Monday = 1 through Sunday = 7.
func DayOfWeek(year uint16, month, day uint8) uint8 {
	return uint8(DaysSinceEpoch(year, month, day)%7) + 1
}

func (d Date) IsValid() bool {
	if d.Year < EpochYear || d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= MonthDays(d.Year, d.Month)
}

func (t Time) IsValid() bool {
	return t.Hour < 24 && t.Minute < 60 && t.Second < 60 && t.Hundredths < 100
}

func (dt DateTime) IsValid() bool {
	return dt.Date.IsValid() && dt.Time.IsValid()
}

// SecondsSinceMidnight returns the time of day in seconds, ignoring
// hundredths.
func (t Time) SecondsSinceMidnight() uint32 {
	return uint32(t.Hour)*3600 + uint32(t.Minute)*60 + uint32(t.Second)
}

func TimeFromSecondsSinceMidnight(seconds uint32) Time {
	return Time{
		Hour:   uint8(seconds / 3600 % 24),
		Minute: uint8(seconds / 60 % 60),
		Second: uint8(seconds % 60),
	}
}

// Compare orders two date/times chronologically, ignoring the weekday
// field. It returns -1, 0, or 1.
func Compare(a, b DateTime) int {
	av := []uint32{
		uint32(a.Date.Year), uint32(a.Date.Month), uint32(a.Date.Day),
		uint32(a.Time.Hour), uint32(a.Time.Minute), uint32(a.Time.Second),
		uint32(a.Time.Hundredths),
	}
	bv := []uint32{
		uint32(b.Date.Year), uint32(b.Date.Month), uint32(b.Date.Day),
		uint32(b.Time.Hour), uint32(b.Time.Minute), uint32(b.Time.Second),
		uint32(b.Time.Hundredths),
	}
	for i := range av {
		if av[i] < bv[i] {
			return -1
		}
		if av[i] > bv[i] {
			return 1
		}
	}
	return 0
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// FromUnix converts Unix epoch seconds into a calendar date/time, treating
// the instant as already being in the target representation (no zone
// arithmetic is applied).
func FromUnix(sec int64) DateTime {
	days := floorDiv(sec, secondsPerDay) + unixEpochDays
	sod := floorMod(sec, secondsPerDay)
	if days < 0 {
		// Before the 1900 epoch; clamp to it.
		return DateTime{Date: NewDate(EpochYear, 1, 1)}
	}
	return DateTime{
		Date: DateFromDaysSinceEpoch(uint32(days)),
		Time: TimeFromSecondsSinceMidnight(uint32(sod)),
	}
}

// Unix converts a calendar date/time into Unix epoch seconds, again with
// no zone arithmetic. Hundredths are discarded.
func (dt DateTime) Unix() int64 {
	days := int64(DaysSinceEpoch(dt.Date.Year, dt.Date.Month, dt.Date.Day))
	return (days-unixEpochDays)*secondsPerDay + int64(dt.Time.SecondsSinceMidnight())
}
