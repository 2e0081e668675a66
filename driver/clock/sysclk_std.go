//go:build !linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"example.com/bacnet-time/bacnet/bacdt"
	"example.com/bacnet-time/base/timebase"
)

// SystemClock is the coupled device clock. This portable variant can read
// the OS clock but has no way to set it.
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

func (c *SystemClock) Local() (bacdt.DateTime, int16, bool, bool) {
	t := time.Now().In(c.location())
	return calendarDateTime(t), standardOffsetMinutes(t), t.IsDST(), true
}

func (c *SystemClock) SetLocal(dt bacdt.DateTime) bool {
	c.Log.Debug("SystemClock.SetLocal, not supported on this platform",
		zap.Stringer("time", dt))
	return false
}

func (c *SystemClock) SetUTC(dt bacdt.DateTime) bool {
	c.Log.Debug("SystemClock.SetUTC, not supported on this platform",
		zap.Stringer("time", dt))
	return false
}

func (c *SystemClock) SetUTCOffset(minutes int) error {
	return timebase.ErrWriteAccessDenied
}

func (c *SystemClock) UTCOffset() int16 {
	return standardOffsetMinutes(time.Now().In(c.location()))
}

func (c *SystemClock) SetDST(active bool) error {
	return timebase.ErrWriteAccessDenied
}

func (c *SystemClock) DST() bool {
	return time.Now().In(c.location()).IsDST()
}
