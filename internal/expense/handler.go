package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/pkg/middleware"
	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for expense operations.
type Handler struct {
	service *Service
	log     *zap.SugaredLogger
}

// NewHandler creates a new expense handler.
func NewHandler(service *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{service: service, log: log}
}

// Routes returns the router for expense endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /expenses
// @Summary      Create a new expense
// @Description  Create an expense with automatic share calculation using the EQUAL, PERCENTAGE, or EXACT strategy; foreign-currency amounts are converted into the ledger currency
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.PayerID == "" {
		if userID, ok := middleware.GetUserID(r.Context()); ok {
			req.PayerID = userID
		}
	}

	e, err := h.service.CreateExpense(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, e.ToResponse())
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetExpenseByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, e.ToResponse())
}

// ListByGroup handles GET /expenses/group/{groupId}
// @Summary      List group records
// @Description  Full expense history for a group, settlements included, oldest first
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Router       /expenses/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByGroup(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]interface{}, len(records))
	for i, record := range records {
		switch rec := record.(type) {
		case *Expense:
			out[i] = rec.ToResponse()
		case *Settlement:
			out[i] = rec.ToResponse()
		}
	}
	response.JSON(w, http.StatusOK, out)
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Description  Removes the record and its shares entirely
// @Tags         expenses
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeError maps service errors onto the response envelope. All core
// failures are deterministic validation problems; anything else is a
// store failure.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, split.ErrValidation),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, currency.ErrInvalidRate),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrNotGroupMember),
		errors.Is(err, ErrInvalidRecordKind):
		response.BadRequest(w, err.Error())
	default:
		h.log.Errorw("expense operation failed", "error", err)
		response.InternalError(w, "Unexpected error")
	}
}
