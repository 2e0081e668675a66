package timebase

import (
	"sync/atomic"

	"example.com/bacnet-time/bacnet/bacdt"
	"example.com/bacnet-time/base/timebase"
)

var dclk atomic.Value

// RegisterClock installs the process-wide device clock. It must be called
// exactly once, before any time operation is dispatched.
func RegisterClock(c timebase.DeviceClock) {
	if c == nil {
		panic("device clock must not be nil")
	}
	swapped := dclk.CompareAndSwap(nil, c)
	if !swapped {
		panic("device clock already registered")
	}
}

func Clock() timebase.DeviceClock {
	c, ok := dclk.Load().(timebase.DeviceClock)
	if !ok {
		panic("no device clock registered")
	}
	return c
}

func Local() (bacdt.DateTime, int16, bool, bool) {
	return Clock().Local()
}
