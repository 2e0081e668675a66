package bacdt

// Wildcard field values. A date or time carrying a wildcard matches any
// value in that position; the clock itself never produces wildcards, but
// schedule and calendar entries do, and writes carrying them must be
// detectable.

const (
	Wildcard     uint8  = 0xff
	YearWildcard uint16 = EpochYear + 0xff
)

func (d Date) WildcardYear() bool    { return d.Year == YearWildcard }
func (d Date) WildcardMonth() bool   { return d.Month == Wildcard }
func (d Date) WildcardDay() bool     { return d.Day == Wildcard }
func (d Date) WildcardWeekDay() bool { return d.WeekDay == Wildcard }

func (d *Date) SetWildcardYear()    { d.Year = YearWildcard }
func (d *Date) SetWildcardMonth()   { d.Month = Wildcard }
func (d *Date) SetWildcardDay()     { d.Day = Wildcard }
func (d *Date) SetWildcardWeekDay() { d.WeekDay = Wildcard }

func (t Time) WildcardHour() bool       { return t.Hour == Wildcard }
func (t Time) WildcardMinute() bool     { return t.Minute == Wildcard }
func (t Time) WildcardSecond() bool     { return t.Second == Wildcard }
func (t Time) WildcardHundredths() bool { return t.Hundredths == Wildcard }

func (t *Time) SetWildcardHour()       { t.Hour = Wildcard }
func (t *Time) SetWildcardMinute()     { t.Minute = Wildcard }
func (t *Time) SetWildcardSecond()     { t.Second = Wildcard }
func (t *Time) SetWildcardHundredths() { t.Hundredths = Wildcard }

// WildcardPresent reports whether any field of the date is a wildcard.
func (d Date) WildcardPresent() bool {
	return d.WildcardYear() || d.WildcardMonth() ||
		d.WildcardDay() || d.WildcardWeekDay()
}

// WildcardPresent reports whether any field of the time is a wildcard.
func (t Time) WildcardPresent() bool {
	return t.WildcardHour() || t.WildcardMinute() ||
		t.WildcardSecond() || t.WildcardHundredths()
}

func (dt DateTime) WildcardPresent() bool {
	return dt.Date.WildcardPresent() || dt.Time.WildcardPresent()
}

// SetWildcard makes every field of the date a wildcard.
func (d *Date) SetWildcard() {
	d.SetWildcardYear()
	d.SetWildcardMonth()
	d.SetWildcardDay()
	d.SetWildcardWeekDay()
}

// SetWildcard makes every field of the time a wildcard.
func (t *Time) SetWildcard() {
	t.SetWildcardHour()
	t.SetWildcardMinute()
	t.SetWildcardSecond()
	t.SetWildcardHundredths()
}

func (dt *DateTime) SetWildcard() {
	dt.Date.SetWildcard()
	dt.Time.SetWildcard()
}

// IsWildcard reports whether every field is a wildcard.
func (dt DateTime) IsWildcard() bool {
	return dt.Date.WildcardYear() && dt.Date.WildcardMonth() &&
		dt.Date.WildcardDay() && dt.Date.WildcardWeekDay() &&
		dt.Time.WildcardHour() && dt.Time.WildcardMinute() &&
		dt.Time.WildcardSecond() && dt.Time.WildcardHundredths()
}
