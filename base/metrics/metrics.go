package metrics

const (
	ClockOffsetH = "The current decoupled clock offset in seconds"
	ClockOffsetN = "bacnettime_clock_offset_seconds"

	ClockReadsH = "The total number of local time reads served"
	ClockReadsN = "bacnettime_clock_reads"

	ClockReadFailuresH = "The total number of local time reads that fell back to the sentinel value"
	ClockReadFailuresN = "bacnettime_clock_read_failures"

	ClockWritesLocalH = "The total number of local time writes"
	ClockWritesLocalN = "bacnettime_clock_writes_local"

	ClockWritesUTCH = "The total number of UTC time writes"
	ClockWritesUTCN = "bacnettime_clock_writes_utc"

	UTCOffsetOverrideH = "Whether the UTC offset override register is active"
	UTCOffsetOverrideN = "bacnettime_utc_offset_override_active"

	DSTOverrideH = "Whether the DST override register is active"
	DSTOverrideN = "bacnettime_dst_override_active"
)
