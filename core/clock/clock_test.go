package clock_test

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"example.com/bacnet-time/bacnet/bacdt"
	"example.com/bacnet-time/base/timebase"
	"example.com/bacnet-time/core/clock"
)

// testSource is a deterministic TimeSource. DST is reported active for all
// instants at or after dstFrom.
type testSource struct {
	instant    int64
	available  bool
	offset     int16
	zoneOK     bool
	dstFrom    int64
	dstUnknown bool
}

var _ timebase.TimeSource = (*testSource)(nil)

func (s *testSource) Now() (int64, bool) { return s.instant, s.available }

func (s *testSource) ZoneOffset(instant int64) (int16, bool) { return s.offset, s.zoneOK }

func (s *testSource) IsDST(instant int64) int {
	if s.dstUnknown {
		return -1
	}
	if instant >= s.dstFrom {
		return 1
	}
	return 0
}

func newTestSource(instant int64, offset int16) *testSource {
	return &testSource{
		instant:   instant,
		available: true,
		offset:    offset,
		zoneOK:    true,
		dstFrom:   math.MaxInt64,
	}
}

func newTestClock(src *testSource) *clock.VirtualClock {
	return &clock.VirtualClock{Log: zap.NewNop(), Src: src}
}

const (
	instant20240310T1200Z = 1_710_072_000 // 2024-03-10 12:00:00 UTC
	instant20240310T0800Z = 1_710_057_600 // 2024-03-10 08:00:00 UTC
	instant20240310T0700Z = 1_710_054_000 // 2024-03-10 07:00:00 UTC
)

func TestRoundTripLocal(t *testing.T) {
	tests := []struct {
		name    string
		hostNow int64
		offset  int16
		dt      bacdt.DateTime
	}{
		{"utc zone", instant20240310T1200Z, 0,
			bacdt.NewDateTime(2023, 6, 15, 10, 30, 45)},
		{"east of UTC", instant20240310T1200Z, 8 * 60,
			bacdt.NewDateTime(2024, 12, 31, 23, 59, 59)},
		{"west of UTC", instant20240310T1200Z, -5 * 60,
			bacdt.NewDateTime(2024, 1, 1, 0, 0, 0)},
		{"half-hour zone", instant20240310T1200Z, 5*60 + 30,
			bacdt.NewDateTime(2031, 2, 28, 6, 7, 8)},
		{"past date", instant20240310T1200Z, -2 * 60,
			bacdt.NewDateTime(1999, 11, 30, 18, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSource(tt.hostNow, tt.offset)
			c := newTestClock(src)
			if ok := c.SetLocal(tt.dt); !ok {
				t.Fatal("SetLocal failed")
			}
			got, offMin, dst, ok := c.Local()
			if !ok {
				t.Fatal("Local failed")
			}
			if got != tt.dt {
				t.Errorf("Local() = %v, want %v", got, tt.dt)
			}
			if offMin != tt.offset {
				t.Errorf("Local() offset = %d, want %d", offMin, tt.offset)
			}
			if dst {
				t.Error("Local() reported DST active, want inactive")
			}
			wantOffset := tt.dt.Unix() - int64(tt.offset)*60 - tt.hostNow
			if c.Offset() != wantOffset {
				t.Errorf("Offset() = %d, want %d", c.Offset(), wantOffset)
			}
		})
	}
}

func TestRoundTripLocalAcrossDSTStart(t *testing.T) {
	// Host at 2024-03-10 12:00 UTC in a UTC-5 zone with DST beginning at
	// 07:00 UTC. Writing 08:00 local must read back as 08:00 local with
	// the zone's standard offset and the provider's DST resolution.
	src := newTestSource(instant20240310T1200Z, -5*60)
	src.dstFrom = instant20240310T0700Z
	c := newTestClock(src)

	dt := bacdt.NewDateTime(2024, 3, 10, 8, 0, 0)
	if ok := c.SetLocal(dt); !ok {
		t.Fatal("SetLocal failed")
	}
	got, offMin, dst, ok := c.Local()
	if !ok {
		t.Fatal("Local failed")
	}
	if got != dt {
		t.Errorf("Local() = %v, want %v", got, dt)
	}
	if offMin != -300 {
		t.Errorf("Local() offset = %d, want -300", offMin)
	}
	if !dst {
		t.Error("Local() reported DST inactive, want active")
	}
}

func TestSetUTC(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, -5*60)
	c := newTestClock(src)

	dt := bacdt.NewDateTime(2024, 3, 9, 22, 15, 0)
	if ok := c.SetUTC(dt); !ok {
		t.Fatal("SetUTC failed")
	}
	if got, want := c.Offset(), dt.Unix()-src.instant; got != want {
		t.Errorf("Offset() = %d, want %d", got, want)
	}

	// 22:15 UTC in a UTC-5 zone is 17:15 local.
	got, offMin, dst, ok := c.Local()
	if !ok {
		t.Fatal("Local failed")
	}
	if want := bacdt.NewDateTime(2024, 3, 9, 17, 15, 0); got != want {
		t.Errorf("Local() = %v, want %v", got, want)
	}
	if offMin != -300 {
		t.Errorf("Local() offset = %d, want -300", offMin)
	}
	if dst {
		t.Error("Local() reported DST active, want inactive")
	}
}

func TestZeroOffsetLocal(t *testing.T) {
	// A freshly started clock reports the host's own local time: 12:00 UTC
	// in a UTC-5 zone is 07:00 local, or 08:00 once DST is in effect.
	tests := []struct {
		name    string
		dstFrom int64
		want    bacdt.DateTime
		wantDST bool
	}{
		{"standard time", math.MaxInt64,
			bacdt.NewDateTime(2024, 3, 10, 7, 0, 0), false},
		{"daylight time", instant20240310T0700Z,
			bacdt.NewDateTime(2024, 3, 10, 8, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSource(instant20240310T1200Z, -5*60)
			src.dstFrom = tt.dstFrom
			c := newTestClock(src)
			got, offMin, dst, ok := c.Local()
			if !ok {
				t.Fatal("Local failed")
			}
			if got != tt.want {
				t.Errorf("Local() = %v, want %v", got, tt.want)
			}
			if offMin != -300 {
				t.Errorf("Local() offset = %d, want -300", offMin)
			}
			if dst != tt.wantDST {
				t.Errorf("Local() dst = %v, want %v", dst, tt.wantDST)
			}
		})
	}
}

func TestOverridePrecedence(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, -5*60)
	c := newTestClock(src)

	if c.DST() {
		t.Fatal("DST() = true before override, want false")
	}
	err := c.SetDST(true)
	if err != nil {
		t.Fatalf("SetDST failed: %v", err)
	}
	if !c.DST() {
		t.Error("DST() = false after override, want true")
	}

	err = c.SetUTCOffset(60)
	if err != nil {
		t.Fatalf("SetUTCOffset failed: %v", err)
	}
	if got := c.UTCOffset(); got != 60 {
		t.Errorf("UTCOffset() = %d, want 60", got)
	}

	// Overridden values must also drive the read path.
	_, offMin, dst, ok := c.Local()
	if !ok {
		t.Fatal("Local failed")
	}
	if offMin != 60 {
		t.Errorf("Local() offset = %d, want 60", offMin)
	}
	if !dst {
		t.Error("Local() reported DST inactive, want active")
	}
}

func TestUTCOffsetRange(t *testing.T) {
	tests := []struct {
		minutes int
		wantErr bool
	}{
		{721, true},
		{-721, true},
		{720, false},
		{-720, false},
		{0, false},
	}

	for _, tt := range tests {
		src := newTestSource(instant20240310T1200Z, 2*60)
		c := newTestClock(src)
		err := c.SetUTCOffset(tt.minutes)
		if tt.wantErr {
			if !errors.Is(err, timebase.ErrValueOutOfRange) {
				t.Errorf("SetUTCOffset(%d) = %v, want ErrValueOutOfRange", tt.minutes, err)
			}
			// The register must stay inactive.
			if got := c.UTCOffset(); got != 2*60 {
				t.Errorf("UTCOffset() = %d after rejected write, want 120", got)
			}
		} else {
			if err != nil {
				t.Errorf("SetUTCOffset(%d) = %v, want success", tt.minutes, err)
			}
			if got := c.UTCOffset(); got != int16(tt.minutes) {
				t.Errorf("UTCOffset() = %d, want %d", got, tt.minutes)
			}
		}
	}
}

func TestLocalWriteCancelsOverrides(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, -5*60)
	c := newTestClock(src)

	if err := c.SetDST(true); err != nil {
		t.Fatalf("SetDST failed: %v", err)
	}
	if err := c.SetUTCOffset(60); err != nil {
		t.Fatalf("SetUTCOffset failed: %v", err)
	}

	if ok := c.SetLocal(bacdt.NewDateTime(2024, 3, 9, 12, 0, 0)); !ok {
		t.Fatal("SetLocal failed")
	}

	if c.DST() {
		t.Error("DST() = true after local write, want provider value false")
	}
	if got := c.UTCOffset(); got != -300 {
		t.Errorf("UTCOffset() = %d after local write, want provider value -300", got)
	}
}

func TestUTCWriteKeepsOverrides(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, -5*60)
	c := newTestClock(src)

	if err := c.SetDST(true); err != nil {
		t.Fatalf("SetDST failed: %v", err)
	}
	if err := c.SetUTCOffset(60); err != nil {
		t.Fatalf("SetUTCOffset failed: %v", err)
	}

	if ok := c.SetUTC(bacdt.NewDateTime(2024, 3, 9, 12, 0, 0)); !ok {
		t.Fatal("SetUTC failed")
	}

	if !c.DST() {
		t.Error("DST() = false after UTC write, want overridden value true")
	}
	if got := c.UTCOffset(); got != 60 {
		t.Errorf("UTCOffset() = %d after UTC write, want overridden value 60", got)
	}
}

func TestUTCOffsetIdempotent(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, -5*60)
	c := newTestClock(src)
	if first, second := c.UTCOffset(), c.UTCOffset(); first != second {
		t.Errorf("UTCOffset() = %d then %d, want identical values", first, second)
	}
}

func TestSentinelOnUnavailableClock(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, -5*60)
	src.available = false
	c := newTestClock(src)

	dt, offMin, dst, ok := c.Local()
	if ok {
		t.Fatal("Local() reported success with unavailable host clock")
	}
	if dt != clock.DateTimeSentinel() {
		t.Errorf("Local() = %v, want 1900-01-01 sentinel", dt)
	}
	if offMin != 8*60 {
		t.Errorf("Local() offset = %d, want 480", offMin)
	}
	if dst {
		t.Error("Local() reported DST active, want inactive")
	}

	if c.SetLocal(bacdt.NewDateTime(2024, 1, 1, 0, 0, 0)) {
		t.Error("SetLocal succeeded with unavailable host clock")
	}
	if c.SetUTC(bacdt.NewDateTime(2024, 1, 1, 0, 0, 0)) {
		t.Error("SetUTC succeeded with unavailable host clock")
	}
}

func TestZoneOffsetFallback(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, 0)
	src.zoneOK = false
	c := newTestClock(src)

	if got := c.UTCOffset(); got != 8*60 {
		t.Errorf("UTCOffset() = %d, want fallback 480", got)
	}
	_, offMin, _, ok := c.Local()
	if !ok {
		t.Fatal("Local failed")
	}
	if offMin != 8*60 {
		t.Errorf("Local() offset = %d, want fallback 480", offMin)
	}
}

func TestUnknownDSTTreatedAsInactive(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, 0)
	src.dstUnknown = true
	c := newTestClock(src)

	if c.DST() {
		t.Error("DST() = true with unavailable DST data, want false")
	}
	_, _, dst, ok := c.Local()
	if !ok {
		t.Fatal("Local failed")
	}
	if dst {
		t.Error("Local() reported DST active with unavailable DST data")
	}
}

func TestSeedRestoresOffset(t *testing.T) {
	src := newTestSource(instant20240310T1200Z, 0)
	c := newTestClock(src)
	c.Seed(-36_000)
	if got := c.Offset(); got != -36_000 {
		t.Errorf("Offset() = %d, want -36000", got)
	}
	got, _, _, ok := c.Local()
	if !ok {
		t.Fatal("Local failed")
	}
	want := bacdt.FromUnix(instant20240310T1200Z - 36_000)
	if got != want {
		t.Errorf("Local() = %v, want %v", got, want)
	}
}
