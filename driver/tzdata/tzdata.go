package tzdata

import (
	"time"

	"example.com/bacnet-time/base/timebase"
)

// ZoneTimeSource resolves instants, zone offsets, and DST status from Go's
// timezone database. It is the production TimeSource behind the decoupled
// clock; tests substitute a deterministic fake.
type ZoneTimeSource struct {
	Loc *time.Location // nil means the host's local zone
}

var _ timebase.TimeSource = (*ZoneTimeSource)(nil)

func (s *ZoneTimeSource) location() *time.Location {
	if s.Loc == nil {
		return time.Local
	}
	return s.Loc
}

func (s *ZoneTimeSource) Now() (int64, bool) {
	return time.Now().Unix(), true
}

// ZoneOffset returns the standard offset at the given instant, minutes
// east of UTC, with any daylight-saving shift removed.
func (s *ZoneTimeSource) ZoneOffset(instant int64) (int16, bool) {
	t := time.Unix(instant, 0).In(s.location())
	_, off := t.Zone()
	minutes := off / 60
	if t.IsDST() {
		minutes -= 60
	}
	return int16(minutes), true
}

// IsDST reports the DST status at the given instant. The zone database
// always yields an answer, so the unavailable case (negative) never occurs
// here; it exists for sources that cannot resolve zone data.
func (s *ZoneTimeSource) IsDST(instant int64) int {
	if time.Unix(instant, 0).In(s.location()).IsDST() {
		return 1
	}
	return 0
}
