package schedule

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// The legacy deployment exposed the endpoint under several paths; all of
// them route to the same handler.
var analyzePaths = []string{"/api", "/api/index", "/api/analyze"}

var errPayloadTooLarge = errors.New("request payload too large")

// HTTPHandler exposes the analyze endpoint over REST.
type HTTPHandler struct {
	service      *Service
	logger       *zap.Logger
	maxBodyBytes int64
	formMemBytes int64
	router       chi.Router
}

// NewHTTPHandler constructs the HTTP handler and wires routes.
func NewHTTPHandler(service *Service, logger *zap.Logger, maxBodyBytes, formMemBytes int64) *HTTPHandler {
	h := &HTTPHandler{
		service:      service,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
		formMemBytes: formMemBytes,
	}
	h.buildRouter()
	return h
}

func (h *HTTPHandler) buildRouter() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", h.handleHealth)
	for _, path := range analyzePaths {
		r.Post(path, h.handleAnalyze)
	}

	h.router = r
}

// Router exposes the configured chi router.
func (h *HTTPHandler) Router() http.Handler {
	return h.router
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *HTTPHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > 0 && r.ContentLength > h.maxBodyBytes {
		h.writeFailure(w, errPayloadTooLarge)
		return
	}

	payload, err := h.readPayload(r)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	link, err := h.service.Process(r.Context(), payload)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "success",
		"link":    link,
	})
}

// readPayload classifies the request body into a Payload. Three shapes are
// accepted: JSON {"text": ...}, a multipart form with a "file" field, and
// a raw binary body of any content type.
func (h *HTTPHandler) readPayload(r *http.Request) (Payload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case mediaType == "application/json":
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, h.maxBodyBytes)).Decode(&body); err != nil {
			return Classify("", nil), nil
		}
		return Classify(body.Text, nil), nil

	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(h.formMemBytes); err != nil {
			return Classify("", nil), nil
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return Classify("", nil), nil
		}
		defer file.Close()
		if header.Size > h.maxBodyBytes {
			return Payload{}, errPayloadTooLarge
		}
		data, err := io.ReadAll(file)
		if err != nil {
			return Payload{}, err
		}
		return Classify("", data), nil

	default:
		data, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes+1))
		if err != nil {
			return Payload{}, err
		}
		if int64(len(data)) > h.maxBodyBytes {
			return Payload{}, errPayloadTooLarge
		}
		return Classify("", data), nil
	}
}

// writeFailure maps the taxonomy to a status code and returns the full
// failure detail, stack included, to the caller. This service is a
// single-operator tool; debuggability beats hiding internals here.
func (h *HTTPHandler) writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	summary := "schedule pipeline failed"

	switch {
	case errors.Is(err, ErrNoInput):
		status = http.StatusBadRequest
		summary = "no input provided (neither text nor image)"
	case errors.Is(err, errPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
		summary = "payload too large"
	case errors.Is(err, ErrMalformedExtraction):
		summary = "extraction produced malformed output"
	case errors.Is(err, ErrMissingStartTime):
		summary = "extracted event has no start time"
	case errors.Is(err, ErrUpstream):
		summary = "upstream service unavailable"
	case errors.Is(err, ErrCalendarRejected):
		summary = "calendar rejected the event"
	}

	h.logger.Error("analyze request failed",
		zap.Int("status", status),
		zap.Error(err),
	)

	writeJSON(w, status, map[string]string{
		"error":   summary,
		"details": err.Error(),
		"trace":   string(debug.Stack()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
