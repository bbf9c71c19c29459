package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/usecase"
)

// MetricsHandler handles HTTP requests for the dashboard metric editors
type MetricsHandler struct {
	metricsUseCase *usecase.MetricsUseCase
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metricsUseCase *usecase.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{metricsUseCase: metricsUseCase}
}

// RegisterRoutes registers metric routes
func (h *MetricsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/metrics/performance", h.ListPerformance).Methods("GET")
	router.HandleFunc("/metrics/performance/{id}", h.UpsertPerformance).Methods("PUT")
	router.HandleFunc("/metrics/customer-service", h.ListCustomerService).Methods("GET")
	router.HandleFunc("/metrics/customer-service/{id}", h.UpsertCustomerService).Methods("PUT")
	router.HandleFunc("/metrics/satisfaction", h.ListSatisfaction).Methods("GET")
	router.HandleFunc("/metrics/satisfaction/{id}", h.UpsertSatisfaction).Methods("PUT")
	router.HandleFunc("/notes", h.ListNotes).Methods("GET")
	router.HandleFunc("/notes", h.CreateNote).Methods("POST")
}

func periodFromQuery(r *http.Request) domain.PeriodType {
	period := domain.PeriodType(r.URL.Query().Get("period"))
	if period == "" {
		period = domain.PeriodWeekly
	}
	return period
}

// ListPerformance handles listing KPI rows for one period
func (h *MetricsHandler) ListPerformance(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsUseCase.ListPerformance(r.Context(), periodFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Performance metrics retrieved successfully", metrics)
}

// UpsertPerformance handles writing a KPI row
func (h *MetricsHandler) UpsertPerformance(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpsertPerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	metric, err := h.metricsUseCase.UpsertPerformance(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Performance metric saved successfully", metric)
}

// ListCustomerService handles listing service counters for one period
func (h *MetricsHandler) ListCustomerService(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsUseCase.ListCustomerService(r.Context(), periodFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Customer service metrics retrieved successfully", metrics)
}

// UpsertCustomerService handles writing a service counter row
func (h *MetricsHandler) UpsertCustomerService(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpsertCustomerServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	metric, err := h.metricsUseCase.UpsertCustomerService(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Customer service metric saved successfully", metric)
}

// ListSatisfaction handles listing survey rows for one period
func (h *MetricsHandler) ListSatisfaction(w http.ResponseWriter, r *http.Request) {
	rows, err := h.metricsUseCase.ListSatisfaction(r.Context(), periodFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Satisfaction scores retrieved successfully", rows)
}

// UpsertSatisfaction handles writing a survey row
func (h *MetricsHandler) UpsertSatisfaction(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpsertSatisfactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	row, err := h.metricsUseCase.UpsertSatisfaction(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Satisfaction score saved successfully", row)
}

// ListNotes handles listing dashboard notes
func (h *MetricsHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.metricsUseCase.ListNotes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Notes retrieved successfully", notes)
}

// CreateNote handles storing a dashboard note
func (h *MetricsHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	note, err := h.metricsUseCase.CreateNote(r.Context(), req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Note created successfully", note)
}
