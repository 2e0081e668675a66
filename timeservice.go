// BACnet device time service

package main

import (
	"bytes"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/bacnet-time/benchmark"

	"example.com/bacnet-time/base/zaplog"

	vclock "example.com/bacnet-time/core/clock"
	"example.com/bacnet-time/core/timebase"

	"example.com/bacnet-time/driver/clock"
	"example.com/bacnet-time/driver/tzdata"
)

const (
	defaultMetricsAddr = "127.0.0.1:8080"

	offsetFileMode     = 0o644
	offsetPollInterval = 10 * time.Second
)

type svcConfig struct {
	Decoupled   bool   `toml:"decoupled,omitempty"`
	Zone        string `toml:"zone,omitempty"`
	OffsetFile  string `toml:"offset_file,omitempty"`
	MetricsAddr string `toml:"metrics_address,omitempty"`
}

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func runMonitor(log *zap.Logger, addr string) {
	if addr == "" {
		addr = defaultMetricsAddr
	}
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) svcConfig {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	var cfg svcConfig
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		log.Fatal("failed to decode configuration", zap.Error(err))
	}
	return cfg
}

func location(cfg svcConfig) *time.Location {
	if cfg.Zone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Zone)
	if err != nil {
		log.Fatal("failed to load zone", zap.String("zone", cfg.Zone), zap.Error(err))
	}
	return loc
}

func loadOffset(path string) (int64, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error("failed to read offset file", zap.Error(err))
		}
		return 0, false
	}
	offset, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		log.Error("failed to parse offset file", zap.Error(err))
		return 0, false
	}
	return offset, true
}

func storeOffset(path string, offset int64) {
	err := os.WriteFile(path, []byte(strconv.FormatInt(offset, 10)+"\n"), offsetFileMode)
	if err != nil {
		log.Error("failed to write offset file", zap.Error(err))
	}
}

func logLocalTime() {
	dt, utcOffsetMinutes, dst, ok := timebase.Local()
	if !ok {
		log.Warn("local time unavailable")
		return
	}
	log.Info("local time",
		zap.Stringer("time", dt),
		zap.Int16("utc_offset", utcOffsetMinutes),
		zap.Bool("dst", dst),
	)
}

func runService(configFile string) {
	cfg := loadConfig(configFile)
	loc := location(cfg)

	if !cfg.Decoupled {
		sclk := &clock.SystemClock{Log: log, Loc: loc}
		timebase.RegisterClock(sclk)
		log.Info("running with coupled OS clock")
		logLocalTime()
		runMonitor(log, cfg.MetricsAddr)
		return
	}

	dclk := &vclock.VirtualClock{
		Log: log,
		Src: &tzdata.ZoneTimeSource{Loc: loc},
	}
	if cfg.OffsetFile != "" {
		if offset, ok := loadOffset(cfg.OffsetFile); ok {
			dclk.Seed(offset)
			log.Info("restored clock offset", zap.Int64("offset", offset))
		}
	}
	timebase.RegisterClock(dclk)
	log.Info("running with decoupled clock")
	logLocalTime()

	if cfg.OffsetFile != "" {
		go func() {
			persisted := dclk.Offset()
			for {
				time.Sleep(offsetPollInterval)
				offset := dclk.Offset()
				if offset != persisted {
					storeOffset(cfg.OffsetFile, offset)
					persisted = offset
				}
			}
		}()
	}

	runMonitor(log, cfg.MetricsAddr)
}

func runTool(zone string) {
	var loc *time.Location
	if zone != "" {
		var err error
		loc, err = time.LoadLocation(zone)
		if err != nil {
			log.Fatal("failed to load zone", zap.String("zone", zone), zap.Error(err))
		}
	}
	sclk := &clock.SystemClock{Log: log, Loc: loc}
	dt, utcOffsetMinutes, dst, ok := sclk.Local()
	if !ok {
		log.Fatal("failed to read local time")
	}
	fmt.Printf("%s, UTC offset %d min, DST %t\n", dt, utcOffsetMinutes, dst)
}

func runBenchmark(zone string) {
	var loc *time.Location
	if zone != "" {
		var err error
		loc, err = time.LoadLocation(zone)
		if err != nil {
			log.Fatal("failed to load zone", zap.String("zone", zone), zap.Error(err))
		}
	}
	dclk := &vclock.VirtualClock{
		Log: zap.NewNop(),
		Src: &tzdata.ZoneTimeSource{Loc: loc},
	}
	benchmark.RunClockBenchmark(dclk)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		zone       string
	)

	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	toolFlags := flag.NewFlagSet("tool", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	runFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	runFlags.StringVar(&configFile, "config", "", "Config file")

	toolFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	toolFlags.StringVar(&zone, "zone", "", "IANA zone name")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.StringVar(&zone, "zone", "", "IANA zone name")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case runFlags.Name():
		err := runFlags.Parse(os.Args[2:])
		if err != nil || runFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runService(configFile)
	case toolFlags.Name():
		err := toolFlags.Parse(os.Args[2:])
		if err != nil || toolFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runTool(zone)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(zone)
	default:
		exitWithUsage()
	}
}
