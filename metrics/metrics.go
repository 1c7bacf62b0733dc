package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics shared by the metadata and device-config generation paths.
var (
	ImagesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrgen_images_generated_total",
			Help: "Number of QR images generated, by record kind.",
		},
		[]string{"kind"})
	GenerateErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrgen_generate_errors_total",
			Help: "Number of failed generation requests, by record kind and failure class.",
		},
		[]string{"kind", "reason"})
	PayloadSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "qrgen_payload_size_bytes",
			Help: "A histogram of serialized payload sizes.",
			// The budget is 220 bytes; buckets resolve how close
			// payloads run to it.
			Buckets: []float64{40, 60, 80, 100, 120, 140, 160, 180, 200, 210, 220},
		},
		[]string{"kind"})
)
