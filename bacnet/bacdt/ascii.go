package bacdt

import (
	"fmt"
	"strconv"
	"strings"
)

// ASCII rendering of dates and times, YYYY/MM/DD and HH:MM:SS.hh.
// Wildcard fields render as "*".

func fieldString(v uint8, wildcard bool) string {
	if wildcard {
		return "*"
	}
	return strconv.Itoa(int(v))
}

func (d Date) String() string {
	year := strconv.Itoa(int(d.Year))
	if d.WildcardYear() {
		year = "*"
	}
	return fmt.Sprintf("%s/%s/%s",
		year,
		fieldString(d.Month, d.WildcardMonth()),
		fieldString(d.Day, d.WildcardDay()))
}

func (t Time) String() string {
	return fmt.Sprintf("%s:%s:%s.%s",
		fieldString(t.Hour, t.WildcardHour()),
		fieldString(t.Minute, t.WildcardMinute()),
		fieldString(t.Second, t.WildcardSecond()),
		fieldString(t.Hundredths, t.WildcardHundredths()))
}

func (dt DateTime) String() string {
	return dt.Date.String() + " " + dt.Time.String()
}

func parseField(s string, max uint) (uint8, error) {
	if s == "*" {
		return Wildcard, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if uint(v) > max {
		return 0, fmt.Errorf("field value %d out of range", v)
	}
	return uint8(v), nil
}

// ParseDate parses "YYYY/MM/DD"; "*" denotes a wildcard field. The weekday
// is derived for fully specified dates and a wildcard otherwise.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	var d Date
	if parts[0] == "*" {
		d.Year = YearWildcard
	} else {
		y, err := strconv.ParseUint(parts[0], 10, 16)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		d.Year = uint16(y)
	}
	var err error
	d.Month, err = parseField(parts[1], 14)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Day, err = parseField(parts[2], 34)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if d.WildcardPresent() {
		d.WeekDay = Wildcard
	} else {
		d.WeekDay = DayOfWeek(d.Year, d.Month, d.Day)
	}
	return d, nil
}

// ParseTime parses "HH:MM[:SS[.hh]]"; "*" denotes a wildcard field.
func ParseTime(s string) (Time, error) {
	var t Time
	hundredths := "0"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		hundredths = s[i+1:]
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Time{}, fmt.Errorf("invalid time %q", s)
	}
	var err error
	t.Hour, err = parseField(parts[0], 23)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	t.Minute, err = parseField(parts[1], 59)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if len(parts) == 3 {
		t.Second, err = parseField(parts[2], 59)
		if err != nil {
			return Time{}, fmt.Errorf("invalid time %q: %w", s, err)
		}
	}
	t.Hundredths, err = parseField(hundredths, 99)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}

// ParseDateTime parses "YYYY/MM/DD HH:MM:SS.hh".
func ParseDateTime(s string) (DateTime, error) {
	ds, ts, found := strings.Cut(s, " ")
	if !found {
		return DateTime{}, fmt.Errorf("invalid date/time %q", s)
	}
	d, err := ParseDate(ds)
	if err != nil {
		return DateTime{}, err
	}
	t, err := ParseTime(ts)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Date: d, Time: t}, nil
}
