package clock

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/bacnet-time/bacnet/bacdt"
	"example.com/bacnet-time/base/metrics"
	"example.com/bacnet-time/base/timebase"
)

const (
	// Offset emitted when the host cannot resolve a zone, +8 hours.
	fallbackOffsetMinutes = 8 * 60

	minUTCOffsetMinutes = -12 * 60
	maxUTCOffsetMinutes = 12 * 60

	secondsPerHour = 60 * 60
)

var (
	offsetGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: metrics.ClockOffsetN,
		Help: metrics.ClockOffsetH,
	})
	utcOverrideGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: metrics.UTCOffsetOverrideN,
		Help: metrics.UTCOffsetOverrideH,
	})
	dstOverrideGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: metrics.DSTOverrideN,
		Help: metrics.DSTOverrideH,
	})
	readsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ClockReadsN,
		Help: metrics.ClockReadsH,
	})
	readFailuresCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ClockReadFailuresN,
		Help: metrics.ClockReadFailuresH,
	})
	writesLocalCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ClockWritesLocalN,
		Help: metrics.ClockWritesLocalH,
	})
	writesUTCCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ClockWritesUTCN,
		Help: metrics.ClockWritesUTCH,
	})
)

// VirtualClock is a device clock decoupled from the OS clock. It derives
// its time from a TimeSource plus a stored offset and never writes to the
// host; protocol services may additionally override the UTC offset and the
// DST status independently of the host's zone data.
//
// The offset and the two override registers form one atomic unit: every
// operation takes effect under a single mutex, so readers observe either a
// fully pre-write or fully post-write state.
type VirtualClock struct {
	Log *zap.Logger
	Src timebase.TimeSource

	mu               sync.Mutex
	offset           int64 // seconds added to the host instant, yielding decoupled UTC
	utcOverride      bool
	utcOffsetMinutes int16
	dstOverride      bool
	dstActive        bool
}

var _ timebase.DeviceClock = (*VirtualClock)(nil)

// Offset returns the stored clock offset in seconds. Adding it to the
// host's current instant yields the decoupled instant.
func (c *VirtualClock) Offset() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Seed restores a previously persisted clock offset. Intended for host
// application startup, before the clock is in use.
func (c *VirtualClock) Seed(offsetSeconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setOffsetLocked(offsetSeconds)
}

func (c *VirtualClock) setOffsetLocked(offsetSeconds int64) {
	c.offset = offsetSeconds
	offsetGauge.Set(float64(offsetSeconds))
}

// rawUTCOffsetMinutesLocked resolves the UTC offset from the time source,
// ignoring any override. The lookup is anchored at the unadjusted host
// instant: resolving it at the adjusted instant would require the offset
// being computed.
func (c *VirtualClock) rawUTCOffsetMinutesLocked(hostNow int64) int16 {
	m, ok := c.Src.ZoneOffset(hostNow)
	if !ok {
		c.Log.Debug("zone offset unavailable, using fallback",
			zap.Int64("instant", hostNow),
			zap.Int16("fallback", fallbackOffsetMinutes),
		)
		return fallbackOffsetMinutes
	}
	return m
}

func (c *VirtualClock) utcOffsetMinutesLocked(hostNow int64) int16 {
	if c.utcOverride {
		return c.utcOffsetMinutes
	}
	return c.rawUTCOffsetMinutesLocked(hostNow)
}

// dstActiveLocked resolves the DST status for a UTC-anchored instant. A
// source reporting the status as unavailable is treated as inactive.
func (c *VirtualClock) dstActiveLocked(anchor int64) bool {
	if c.dstOverride {
		return c.dstActive
	}
	v := c.Src.IsDST(anchor)
	if v < 0 {
		c.Log.Debug("DST status unavailable, assuming inactive",
			zap.Int64("instant", anchor))
	}
	return v > 0
}

// Local returns the local calendar date/time, the UTC offset, and the DST
// flag used to produce it. When the host clock is unavailable it emits the
// 1900-01-01 sentinel with a +8h offset and reports failure via ok.
func (c *VirtualClock) Local() (dt bacdt.DateTime, utcOffsetMinutes int16, dst bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hostNow, ok := c.Src.Now()
	if !ok {
		readFailuresCounter.Inc()
		c.Log.Warn("host clock unavailable, emitting sentinel time")
		return DateTimeSentinel(), fallbackOffsetMinutes, false, false
	}
	adjusted := hostNow + c.offset
	offMin := c.utcOffsetMinutesLocked(hostNow)
	dst = c.dstActiveLocked(adjusted)
	display := adjusted + int64(offMin)*60
	if dst {
		display += secondsPerHour
	}
	readsCounter.Inc()
	return bacdt.FromUnix(display), offMin, dst, true
}

// SetLocal sets the clock from a local calendar date/time. Touching local
// settings cancels both override registers before the new offset is
// computed, so the offset and DST corrections come from the time source.
// The host OS clock is never written.
func (c *VirtualClock) SetLocal(dt bacdt.DateTime) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.utcOverride = false
	c.dstOverride = false
	utcOverrideGauge.Set(0)
	dstOverrideGauge.Set(0)
	hostNow, ok := c.Src.Now()
	if !ok {
		c.Log.Warn("host clock unavailable, local time not set")
		return false
	}
	naive := dt.Unix()
	offMin := c.rawUTCOffsetMinutesLocked(hostNow)
	dst := c.Src.IsDST(naive) > 0
	target := naive - int64(offMin)*60
	if dst {
		target -= secondsPerHour
	}
	c.setOffsetLocked(target - hostNow)
	writesLocalCounter.Inc()
	c.Log.Info("local time set",
		zap.Stringer("time", dt),
		zap.Int64("clock_offset", c.offset),
	)
	return true
}

// SetUTC sets the clock from a UTC calendar date/time. The override
// registers are left untouched.
func (c *VirtualClock) SetUTC(dt bacdt.DateTime) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	hostNow, ok := c.Src.Now()
	if !ok {
		c.Log.Warn("host clock unavailable, UTC time not set")
		return false
	}
	c.setOffsetLocked(dt.Unix() - hostNow)
	writesUTCCounter.Inc()
	c.Log.Info("UTC time set",
		zap.Stringer("time", dt),
		zap.Int64("clock_offset", c.offset),
	)
	return true
}

// SetUTCOffset activates the UTC offset override register. Values outside
// [-720, 720] minutes are rejected and leave the register unchanged.
func (c *VirtualClock) SetUTCOffset(minutes int) error {
	if minutes < minUTCOffsetMinutes || minutes > maxUTCOffsetMinutes {
		return timebase.ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.utcOffsetMinutes = int16(minutes)
	c.utcOverride = true
	utcOverrideGauge.Set(1)
	c.Log.Info("UTC offset override set", zap.Int("minutes", minutes))
	return nil
}

func (c *VirtualClock) UTCOffset() int16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.utcOverride {
		return c.utcOffsetMinutes
	}
	hostNow, ok := c.Src.Now()
	if !ok {
		return fallbackOffsetMinutes
	}
	return c.rawUTCOffsetMinutesLocked(hostNow)
}

// SetDST activates the DST override register.
func (c *VirtualClock) SetDST(active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dstActive = active
	c.dstOverride = true
	dstOverrideGauge.Set(1)
	c.Log.Info("DST override set", zap.Bool("active", active))
	return nil
}

func (c *VirtualClock) DST() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dstOverride {
		return c.dstActive
	}
	hostNow, ok := c.Src.Now()
	if !ok {
		return false
	}
	return c.Src.IsDST(hostNow+c.offset) > 0
}

// DateTimeSentinel is the date/time emitted when the host clock cannot be
// read: the 1900-01-01 00:00:00 calendar epoch.
func DateTimeSentinel() bacdt.DateTime {
	return bacdt.DateTime{Date: bacdt.NewDate(bacdt.EpochYear, 1, 1)}
}
