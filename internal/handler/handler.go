package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/service"
)

// MaxBatchItems caps a batch prediction request. Raising it means raising
// the server write timeout too, since batch scoring paces itself.
const MaxBatchItems = 30

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetIndicators returns the current economic indicator snapshot
func (h *Handler) GetIndicators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetIndicators())
}

// PredictPrice scores a single item
func (h *Handler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	var obs models.PriceObservation
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if obs.ItemName == "" {
		writeError(w, http.StatusBadRequest, "item_name is required")
		return
	}
	if obs.CurrentPrice < 0 {
		writeError(w, http.StatusBadRequest, "current_price must be non-negative")
		return
	}

	writeJSON(w, http.StatusOK, h.svc.PredictPrice(r.Context(), obs))
}

// PredictPricesBatch scores a list of items, preserving input order
func (h *Handler) PredictPricesBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []models.PriceObservation `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items is required")
		return
	}
	if len(req.Items) > MaxBatchItems {
		writeError(w, http.StatusBadRequest, "too many items in one batch")
		return
	}
	for _, obs := range req.Items {
		if obs.ItemName == "" || obs.CurrentPrice < 0 {
			writeError(w, http.StatusBadRequest, "every item needs a name and a non-negative price")
			return
		}
	}

	results, err := h.svc.PredictPricesBatch(r.Context(), req.Items)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"predictions": results})
}

// AnalyzeScenario produces a budget plan for a life scenario
func (h *Handler) AnalyzeScenario(w http.ResponseWriter, r *http.Request) {
	var scenario models.Scenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(scenario.CurrentBudget) == 0 {
		writeError(w, http.StatusBadRequest, "current_budget is required")
		return
	}
	for name, amount := range scenario.CurrentBudget {
		if amount < 0 {
			writeError(w, http.StatusBadRequest, "budget amount for "+name+" must be non-negative")
			return
		}
	}

	writeJSON(w, http.StatusOK, h.svc.AnalyzeScenario(r.Context(), scenario))
}

// PredictionHistory returns recent prediction rows
func (h *Handler) PredictionHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.svc.ListPredictionHistory(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"predictions": records})
}

// Health is a liveness check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
