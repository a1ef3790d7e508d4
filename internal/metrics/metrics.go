// Package metrics records render throughput on a private Prometheus
// registry that is written out as a node-exporter textfile after a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	registry      *prometheus.Registry
	framesTotal   *prometheus.CounterVec
	renderSeconds prometheus.Histogram
	encodeSeconds prometheus.Histogram
	workers       prometheus.Gauge
	runSeconds    prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adreel_frames_rendered_total",
				Help: "Total number of frames rendered",
			},
			[]string{"composition"},
		),
		renderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "adreel_frame_render_seconds",
			Help:    "Time to evaluate and rasterize one frame",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		encodeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "adreel_encode_write_seconds",
			Help:    "Time to hand one frame to the encoder",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adreel_render_workers",
			Help: "Number of parallel render workers",
		}),
		runSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adreel_run_seconds",
			Help: "Wall time of the last render run",
		}),
	}
	r.registry.MustRegister(r.framesTotal, r.renderSeconds, r.encodeSeconds, r.workers, r.runSeconds)
	return r
}

func (r *Recorder) FrameRendered(composition string, d time.Duration) {
	r.framesTotal.WithLabelValues(composition).Inc()
	r.renderSeconds.Observe(d.Seconds())
}

func (r *Recorder) FrameEncoded(d time.Duration) { r.encodeSeconds.Observe(d.Seconds()) }

func (r *Recorder) SetWorkers(n int) { r.workers.Set(float64(n)) }

func (r *Recorder) RunFinished(d time.Duration) { r.runSeconds.Set(d.Seconds()) }

// Registry exposes the collectors, e.g. for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes every metric in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
