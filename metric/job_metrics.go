package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RunningJobsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "carrierdelay_running_jobs",
	Help: "The current number of running pipeline jobs",
})

var JobDurationSummary = promauto.NewSummary(prometheus.SummaryOpts{
	Name: "carrierdelay_job_duration_sec",
	Help: "Pipeline job execution duration in seconds",
})

// StageLabels are vector definitions for stage-level metrics.
var StageLabels = []string{"stage"}

var StageRowsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "carrierdelay_stage_rows_total",
		Help: "The number of rows applied to each stage",
	},
	StageLabels,
)
