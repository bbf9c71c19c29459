package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/usecase"
)

// ComplaintHandler handles HTTP requests for the complaint log
type ComplaintHandler struct {
	complaintUseCase *usecase.ComplaintUseCase
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintUseCase *usecase.ComplaintUseCase) *ComplaintHandler {
	return &ComplaintHandler{complaintUseCase: complaintUseCase}
}

// RegisterRoutes registers complaint routes
func (h *ComplaintHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/complaints", h.CreateComplaint).Methods("POST")
	router.HandleFunc("/complaints", h.ListComplaints).Methods("GET")
	router.HandleFunc("/complaints/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/complaints/{id}", h.GetComplaint).Methods("GET")
	router.HandleFunc("/complaints/{id}", h.UpdateComplaint).Methods("PATCH")
	router.HandleFunc("/complaints/{id}", h.DeleteComplaint).Methods("DELETE")
	router.HandleFunc("/complaints/{id}/actions", h.ListActions).Methods("GET")
}

// CreateComplaint handles logging a new complaint
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	complaint, err := h.complaintUseCase.CreateComplaint(r.Context(), req, actingUser(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Complaint created successfully", complaint)
}

// ListComplaints handles listing visible complaints with optional filters
func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	filter := domain.ComplaintFilter{
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.ComplaintStatus(status)
		filter.Status = &s
	}

	complaints, err := h.complaintUseCase.ListComplaints(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if complaints == nil {
		complaints = []*domain.Complaint{}
	}

	respondSuccess(w, http.StatusOK, "Complaints retrieved successfully", complaints)
}

// GetComplaint handles retrieving a single complaint
func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.complaintUseCase.GetComplaint(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Complaint retrieved successfully", complaint)
}

// UpdateComplaint handles editing a complaint's mutable fields
func (h *ComplaintHandler) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpdateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	complaint, err := h.complaintUseCase.UpdateComplaint(r.Context(), mux.Vars(r)["id"], req, actingUser(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Complaint updated successfully", complaint)
}

// DeleteComplaint handles soft-deleting a complaint
func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	if err := h.complaintUseCase.DeleteComplaint(r.Context(), mux.Vars(r)["id"], actingUser(r)); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Complaint deleted successfully", nil)
}

// ListActions handles retrieving a complaint's audit trail
func (h *ComplaintHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.complaintUseCase.ListComplaintActions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Complaint actions retrieved successfully", entries)
}

// GetStats handles the dashboard complaint counters
func (h *ComplaintHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.complaintUseCase.GetComplaintStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Complaint stats retrieved successfully", stats)
}

// actingUser resolves the display name recorded as modified_by on audit
// entries from the authenticated request
func actingUser(r *http.Request) string {
	if claims, ok := UserFromContext(r.Context()); ok {
		if claims.Name != "" {
			return claims.Name
		}
		return claims.UserID
	}
	return "unknown"
}
