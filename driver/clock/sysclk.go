package clock

import (
	"time"

	"example.com/bacnet-time/bacnet/bacdt"
)

func calendarDateTime(t time.Time) bacdt.DateTime {
	return bacdt.DateTime{
		Date: bacdt.NewDate(uint16(t.Year()), uint8(t.Month()), uint8(t.Day())),
		Time: bacdt.NewTime(
			uint8(t.Hour()), uint8(t.Minute()), uint8(t.Second()),
			uint8(t.Nanosecond()/10_000_000)),
	}
}

// standardOffsetMinutes returns the zone offset in minutes east of UTC with
// any daylight-saving shift removed; DST is reported separately.
func standardOffsetMinutes(t time.Time) int16 {
	_, off := t.Zone()
	minutes := off / 60
	if t.IsDST() {
		minutes -= 60
	}
	return int16(minutes)
}
