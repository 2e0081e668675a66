package benchmark

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"example.com/bacnet-time/base/timebase"
)

// RunClockBenchmark hammers the read path of the given device clock from
// concurrent goroutines and prints per-call latency percentiles in
// nanoseconds. Reads and writes share one critical section, so this also
// exercises the contention behavior of the state machine.
func RunClockBenchmark(clk timebase.DeviceClock) {
	const numGoroutine = 8
	const numReadsPerGoroutine = 1_000_000
	var mu sync.Mutex
	sg := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(numGoroutine)
	for i := numGoroutine; i > 0; i-- {
		go func() {
			hg := hdrhistogram.New(1, 1_000_000_000, 3)

			defer wg.Done()
			<-sg
			for j := numReadsPerGoroutine; j > 0; j-- {
				t0 := time.Now()
				_, _, _, ok := clk.Local()
				d := time.Since(t0)
				if !ok {
					log.Print("Failed to read local time")
					return
				}
				err := hg.RecordValue(d.Nanoseconds())
				if err != nil {
					log.Printf("Failed to record histogram value: %v", err)
					return
				}
			}
			mu.Lock()
			defer mu.Unlock()
			hg.PercentilesPrint(os.Stdout, 1, 1.0)
		}()
	}
	t0 := time.Now()
	close(sg)
	wg.Wait()
	log.Print(time.Since(t0))
}
