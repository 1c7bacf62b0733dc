// Package handler implements the qrgen HTTP API.
//
// The handler handles the qrgen URLs:
//
// - GET / (service metadata)
// - GET /health (liveness)
// - POST /generate (metadata QR)
// - POST /generate/config (device-config QR)
//
// All endpoints are stateless: every request validates its own fields,
// builds a fresh record, and discards it once the image is written.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m3-datalogger/qrgen/logging"
	"github.com/m3-datalogger/qrgen/metrics"
	"github.com/m3-datalogger/qrgen/payload"
	"github.com/m3-datalogger/qrgen/qrimage"
	"github.com/m3-datalogger/qrgen/shortid"
)

// ServiceName identifies this service in the root endpoint.
const ServiceName = "M3 Data Logger QR Code Generator API"

// Version is the service version reported by the root endpoint.
const Version = "1.0.0"

// Handler serves the qrgen API.
type Handler struct {
	// Limits bounds device-config fields and the payload budget.
	Limits payload.Limits

	// NewID produces test ids when the request omits one. Replaced in
	// tests for determinism.
	NewID func() string
}

// New returns a Handler using the given limits and the process-wide id
// generator.
func New(limits payload.Limits) *Handler {
	return &Handler{Limits: limits, NewID: shortid.New}
}

// Register attaches all qrgen routes to r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/generate", h.Generate).Methods("POST")
	r.HandleFunc("/generate/config", h.GenerateConfig).Methods("POST")
}

// Root returns service metadata.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": ServiceName,
		"version": Version,
		"endpoints": map[string]string{
			"POST /generate":        "Generate QR code from test metadata",
			"POST /generate/config": "Generate device configuration QR code",
			"GET /health":           "Health check endpoint",
		},
	})
}

// Health returns liveness status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type generateRequest struct {
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	TestID      string   `json:"test_id"`
}

// Generate builds a metadata QR image from the request body and returns
// it as PNG bytes. The resolved test id travels back in the X-Test-ID
// header.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	rid := uuid.NewString()
	w.Header().Set("X-Request-ID", rid)
	logger := logging.Logger.WithField("request_id", rid)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.GenerateErrors.WithLabelValues("metadata", "validation").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	testID := req.TestID
	if testID == "" {
		testID = h.NewID()
	}
	record := payload.Metadata{
		TestID:      testID,
		Description: req.Description,
		Labels:      req.Labels,
	}
	if err := record.Validate(); err != nil {
		metrics.GenerateErrors.WithLabelValues("metadata", "validation").Inc()
		logger.WithError(err).Warn("generate: validation failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := record.Encode(h.Limits)
	if err != nil {
		h.writeGenerateError(w, logger, "metadata", err)
		return
	}
	png, err := qrimage.PNG(data)
	if err != nil {
		h.writeGenerateError(w, logger, "metadata", err)
		return
	}

	metrics.ImagesGenerated.WithLabelValues("metadata").Inc()
	metrics.PayloadSize.WithLabelValues("metadata").Observe(float64(len(data)))
	w.Header().Set("X-Test-ID", testID)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=qr_%s.png", testID))
	writePNG(w, png)
}

type configRequest struct {
	WifiSSID     string `json:"wifi_ssid"`
	WifiPassword string `json:"wifi_password"`
	MQTTHost     string `json:"mqtt_host"`
	MQTTPort     int    `json:"mqtt_port"`
	MQTTUsername string `json:"mqtt_username"`
	MQTTPassword string `json:"mqtt_password"`
	DeviceID     string `json:"device_id"`
}

// GenerateConfig builds a device-config QR image from the request body
// and returns it as PNG bytes. The device id travels back in the
// X-Device-ID header.
func (h *Handler) GenerateConfig(w http.ResponseWriter, r *http.Request) {
	rid := uuid.NewString()
	w.Header().Set("X-Request-ID", rid)
	logger := logging.Logger.WithField("request_id", rid)

	// Absent mqtt_port means the well-known broker default.
	req := configRequest{MQTTPort: payload.DefaultMQTTPort}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.GenerateErrors.WithLabelValues("config", "validation").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	record := payload.NewDeviceConfig(
		payload.WifiCredentials{SSID: req.WifiSSID, Password: req.WifiPassword},
		payload.BrokerConfig{
			Host:     req.MQTTHost,
			Port:     req.MQTTPort,
			Username: req.MQTTUsername,
			Password: req.MQTTPassword,
			DeviceID: req.DeviceID,
		},
	)
	if err := record.Validate(h.Limits); err != nil {
		metrics.GenerateErrors.WithLabelValues("config", "validation").Inc()
		logger.WithError(err).Warn("generate/config: validation failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := record.Encode(h.Limits)
	if err != nil {
		h.writeGenerateError(w, logger, "config", err)
		return
	}
	png, err := qrimage.PNG(data)
	if err != nil {
		h.writeGenerateError(w, logger, "config", err)
		return
	}

	metrics.ImagesGenerated.WithLabelValues("config").Inc()
	metrics.PayloadSize.WithLabelValues("config").Observe(float64(len(data)))
	w.Header().Set("X-Device-ID", record.MQTT.DeviceID)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=config_qr_%s.png", record.MQTT.DeviceID))
	writePNG(w, png)
}

// writeGenerateError maps post-validation failures onto HTTP statuses:
// budget overflows are client errors carrying the itemized reason,
// encoder rejections and anything else are internal errors with a
// generic body so internals never leak.
func (h *Handler) writeGenerateError(w http.ResponseWriter, logger *log.Entry, kind string, err error) {
	var budgetErr *payload.BudgetError
	var encErr *qrimage.EncodingError
	switch {
	case errors.As(err, &budgetErr):
		metrics.GenerateErrors.WithLabelValues(kind, "budget").Inc()
		logger.WithError(err).Warn("generate: payload over budget")
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &encErr):
		metrics.GenerateErrors.WithLabelValues(kind, "encoding").Inc()
		logger.WithError(err).Error("generate: encoder rejected payload")
		writeError(w, http.StatusInternalServerError, "QR generation failed")
	default:
		metrics.GenerateErrors.WithLabelValues(kind, "internal").Inc()
		logger.WithError(err).Error("generate: unexpected failure")
		writeError(w, http.StatusInternalServerError, "QR generation failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"error": reason})
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
