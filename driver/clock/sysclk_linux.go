//go:build linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"example.com/bacnet-time/bacnet/bacdt"
	"example.com/bacnet-time/base/timebase"
)

// SystemClock is the coupled device clock: every operation passes through
// to the OS clock and the host's zone database. Time writes require the
// privilege to call clock_settime and report failure via their boolean
// return, since the protocol services driving them have no error channel.
type SystemClock struct {
	Log *zap.Logger
	Loc *time.Location // nil means the host's local zone
}

var _ timebase.DeviceClock = (*SystemClock)(nil)

func (c *SystemClock) location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

func (c *SystemClock) now() (time.Time, bool) {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts)
	if err != nil {
		c.Log.Error("unix.ClockGettime failed", zap.Error(err))
		return time.Time{}, false
	}
	return time.Unix(ts.Unix()).In(c.location()), true
}

func (c *SystemClock) set(instant int64) bool {
	ts := unix.NsecToTimespec(instant * 1e9)
	err := unix.ClockSettime(unix.CLOCK_REALTIME, &ts)
	if err != nil {
		// Most likely EPERM: the process lacks the privilege to set
		// the OS clock.
		c.Log.Error("unix.ClockSettime failed", zap.Error(err))
		return false
	}
	return true
}

func (c *SystemClock) Local() (bacdt.DateTime, int16, bool, bool) {
	t, ok := c.now()
	if !ok {
		return bacdt.DateTime{Date: bacdt.NewDate(bacdt.EpochYear, 1, 1)},
			8 * 60, false, false
	}
	return calendarDateTime(t), standardOffsetMinutes(t), t.IsDST(), true
}

func (c *SystemClock) SetLocal(dt bacdt.DateTime) bool {
	t := time.Date(
		int(dt.Date.Year), time.Month(dt.Date.Month), int(dt.Date.Day),
		int(dt.Time.Hour), int(dt.Time.Minute), int(dt.Time.Second),
		0, c.location())
	return c.set(t.Unix())
}

func (c *SystemClock) SetUTC(dt bacdt.DateTime) bool {
	return c.set(dt.Unix())
}

func (c *SystemClock) SetUTCOffset(minutes int) error {
	// OS-controlled zone data cannot be overridden.
	return timebase.ErrWriteAccessDenied
}

func (c *SystemClock) UTCOffset() int16 {
	t, ok := c.now()
	if !ok {
		return 8 * 60
	}
	return standardOffsetMinutes(t)
}

func (c *SystemClock) SetDST(active bool) error {
	return timebase.ErrWriteAccessDenied
}

func (c *SystemClock) DST() bool {
	t, ok := c.now()
	if !ok {
		return false
	}
	return t.IsDST()
}
