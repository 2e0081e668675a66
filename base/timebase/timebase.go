package timebase

import (
	"example.com/bacnet-time/bacnet/bacdt"
)

// A TimeSource supplies the host's view of time: the current instant as
// Unix epoch seconds, and zone data for a given instant according to the
// host's timezone database. It is a pure query interface; implementations
// never mutate host state.
type TimeSource interface {
	// Now returns the current instant; ok is false when the host clock
	// is unavailable.
	Now() (instant int64, ok bool)

	// ZoneOffset returns the standard UTC offset, in minutes east of
	// UTC and excluding any daylight-saving shift, in effect at the
	// given instant; ok is false when no zone data can be resolved.
	ZoneOffset(instant int64) (minutes int16, ok bool)

	// IsDST reports whether daylight saving time is in effect at the
	// given instant, interpreted in the local zone: positive if in
	// effect, zero if not, negative if the information is unavailable.
	IsDST(instant int64) int
}

// A DeviceClock is the time the device presents to its protocol stack.
// Implementations are safe for concurrent use.
type DeviceClock interface {
	// Local returns the local calendar date/time together with the UTC
	// offset (minutes, east-positive) and DST flag that produced it.
	// ok is false when the time source failed; the returned values are
	// then the documented sentinels.
	Local() (dt bacdt.DateTime, utcOffsetMinutes int16, dst bool, ok bool)

	// SetLocal sets the clock from a local calendar date/time and
	// cancels any UTC offset or DST overrides.
	SetLocal(dt bacdt.DateTime) bool

	// SetUTC sets the clock from a UTC calendar date/time, leaving
	// overrides untouched.
	SetUTC(dt bacdt.DateTime) bool

	// SetUTCOffset overrides the UTC offset, minutes east-positive,
	// within [-720, 720].
	SetUTCOffset(minutes int) error
	UTCOffset() int16

	// SetDST overrides the daylight-saving status.
	SetDST(active bool) error
	DST() bool
}
