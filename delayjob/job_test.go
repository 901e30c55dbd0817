package delayjob

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ab180/carrierdelay/config"
	"github.com/ab180/carrierdelay/flight"
	"github.com/ab180/carrierdelay/metric"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

const (
	samplePath    = "testdata/sample.csv"
	malformedPath = "testdata/malformed.csv"
)

var expectedDelays = []flight.CarrierAggregate{
	{Carrier: "AA", TotalMins: 30, Count: 2},
	{Carrier: "DL", TotalMins: 7, Count: 1},
	{Carrier: "WN", TotalMins: 37, Count: 2},
}

func configFor(path string) *config.Config {
	c := config.Default()
	c.InputPath = path
	return c
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given the sample dataset", t, func() {
		cfg := configFor(samplePath)

		Convey("It should aggregate delayed flights by carrier", func() {
			s, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(s.Carriers, ShouldResemble, expectedDelays)
			So(s.Warnings, ShouldBeNil)

			avg, err := s.Carriers[0].Average()
			So(err, ShouldBeNil)
			So(avg, ShouldEqual, 15)
			So(s.Carriers[0].String(), ShouldEqual, "Delays for carrier AA: 15 average mins, 2 delayed flights")
			So(s.Carriers[2].String(), ShouldEqual, "Delays for carrier WN: 18 average mins, 2 delayed flights")

			Convey("Flights with NA delay should be excluded", func() {
				for _, agg := range s.Carriers {
					So(agg.Carrier, ShouldNotEqual, "UA")
				}
			})

			Convey("Counts should sum up to the number of delayed flights", func() {
				total := 0
				for _, agg := range s.Carriers {
					total += agg.Count
				}
				So(total, ShouldEqual, 5)
				So(s.Metrics["ProjectDelay3/Records"], ShouldEqual, 5)
				So(s.Metrics["SumDelays4/Records"], ShouldEqual, 5)
				So(s.Metrics["DecodeEvents1/Lines"], ShouldEqual, 10)
			})
		})

		Convey("It should give the same result when run twice", func() {
			first, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			second, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(second.Carriers, ShouldResemble, first.Carriers)
		})

		Convey("When carriers are hashed into many partitions", func() {
			cfg.Partitions = 4

			Convey("It should give the same sorted result", func() {
				s, err := Run(context.Background(), cfg)
				So(err, ShouldBeNil)
				So(s.Carriers, ShouldResemble, expectedDelays)
			})

			Convey("It should give the same aggregates without sorting", func() {
				cfg.SortOutput = false
				s, err := Run(context.Background(), cfg)
				So(err, ShouldBeNil)
				So(s.Carriers, ShouldHaveLength, len(expectedDelays))
				for _, agg := range expectedDelays {
					So(s.Carriers, ShouldContain, agg)
				}
			})
		})

		Convey("When on-time flights are included", func() {
			cfg.IncludeOnTime = true

			Convey("It should aggregate every flight with a delay", func() {
				s, err := Run(context.Background(), cfg)
				So(err, ShouldBeNil)
				So(s.Carriers, ShouldResemble, []flight.CarrierAggregate{
					{Carrier: "AA", TotalMins: 25, Count: 3},
					{Carrier: "DL", TotalMins: 7, Count: 1},
					{Carrier: "WN", TotalMins: 37, Count: 3},
				})
			})

			Convey("It should count unparsable delays as zero with the zero policy", func() {
				cfg.UnparsableDelay = config.ZeroDelay
				s, err := Run(context.Background(), cfg)
				So(err, ShouldBeNil)
				So(s.Carriers, ShouldResemble, []flight.CarrierAggregate{
					{Carrier: "AA", TotalMins: 25, Count: 4},
					{Carrier: "DL", TotalMins: 7, Count: 1},
					{Carrier: "UA", TotalMins: 0, Count: 1},
					{Carrier: "WN", TotalMins: 37, Count: 3},
				})
			})
		})

		Convey("The zero policy alone should not change the result", func() {
			cfg.UnparsableDelay = config.ZeroDelay
			s, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(s.Carriers, ShouldResemble, expectedDelays)
		})
	})
}

func TestRun_MalformedRows(t *testing.T) {
	Convey("Given a dataset with malformed lines", t, func() {
		cfg := configFor(malformedPath)

		Convey("It should skip them by default", func() {
			s, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(s.Carriers, ShouldResemble, []flight.CarrierAggregate{
				{Carrier: "AA", TotalMins: 30, Count: 2},
				{Carrier: "DL", TotalMins: 7, Count: 1},
			})
			So(s.Metrics["DecodeEvents1/Malformed"], ShouldEqual, 2)
			So(s.Metrics["DecodeEvents1/Lines"], ShouldEqual, 6)

			So(s.Warnings, ShouldNotBeNil)
			So(errors.Is(s.Warnings, flight.ErrMalformedRecord), ShouldBeTrue)
			So(s.Warnings.Error(), ShouldContainSubstring, "line 3")
			So(s.Warnings.Error(), ShouldContainSubstring, "line 6")
		})

		Convey("It should keep only a limited number of warnings", func() {
			cfg.MaxReportedErrors = 1
			s, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(s.Metrics["DecodeEvents1/Malformed"], ShouldEqual, 2)
			So(s.Warnings.Error(), ShouldContainSubstring, "line 3")
			So(s.Warnings.Error(), ShouldNotContainSubstring, "line 6")
		})

		Convey("It should fail on the first one with the fail policy", func() {
			cfg.MalformedRows = config.FailOnMalformed
			s, err := Run(context.Background(), cfg)
			So(s, ShouldBeNil)
			So(errors.Is(err, flight.ErrMalformedRecord), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "line 3")
		})
	})
}

func TestRun_Errors(t *testing.T) {
	Convey("Running with a missing input file", t, func() {
		s, err := Run(context.Background(), configFor(filepath.Join(t.TempDir(), "2008.csv")))

		Convey("It should fail without aggregates", func() {
			So(s, ShouldBeNil)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "open input")
		})
	})

	Convey("Running with an invalid config", t, func() {
		cfg := configFor(samplePath)
		cfg.MalformedRows = "ignore"

		_, err := Run(context.Background(), cfg)
		So(errors.Is(err, config.ErrInvalidPolicy), ShouldBeTrue)
	})

	Convey("Running with a canceled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, configFor(samplePath))
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestRun_CompressedInput(t *testing.T) {
	Convey("Given compressed copies of the sample dataset", t, func() {
		dir := t.TempDir()

		Convey("It should read bzip2", func() {
			s, err := Run(context.Background(), configFor("testdata/sample.csv.bz2"))
			So(err, ShouldBeNil)
			So(s.Carriers, ShouldResemble, expectedDelays)
		})

		Convey("It should read gzip", func() {
			path := filepath.Join(dir, "sample.csv.gz")
			compress(path, func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) })

			s, err := Run(context.Background(), configFor(path))
			So(err, ShouldBeNil)
			So(s.Carriers, ShouldResemble, expectedDelays)
		})

		Convey("It should read lz4", func() {
			path := filepath.Join(dir, "sample.csv.lz4")
			compress(path, func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) })

			s, err := Run(context.Background(), configFor(path))
			So(err, ShouldBeNil)
			So(s.Carriers, ShouldResemble, expectedDelays)
		})
	})
}

func TestRun_PrometheusMetrics(t *testing.T) {
	Convey("Running a job", t, func() {
		rowsBefore := testutil.ToFloat64(metric.StageRowsCounter.WithLabelValues("DecodeEvents1"))
		jobsBefore := observedJobs()

		_, err := Run(context.Background(), configFor(samplePath))
		So(err, ShouldBeNil)

		Convey("It should count rows of each stage", func() {
			So(testutil.ToFloat64(metric.StageRowsCounter.WithLabelValues("DecodeEvents1"))-rowsBefore, ShouldEqual, 10)
		})

		Convey("It should observe the job duration", func() {
			So(observedJobs()-jobsBefore, ShouldEqual, 1)
			So(testutil.ToFloat64(metric.RunningJobsGauge), ShouldEqual, 0)
		})
	})
}

func observedJobs() uint64 {
	m := &dto.Metric{}
	So(metric.JobDurationSummary.Write(m), ShouldBeNil)
	return m.GetSummary().GetSampleCount()
}

func compress(path string, newWriter func(io.Writer) io.WriteCloser) {
	src, err := os.ReadFile(samplePath)
	So(err, ShouldBeNil)

	f, err := os.Create(path)
	So(err, ShouldBeNil)
	w := newWriter(f)
	_, err = w.Write(src)
	So(err, ShouldBeNil)
	So(w.Close(), ShouldBeNil)
	So(f.Close(), ShouldBeNil)
}
