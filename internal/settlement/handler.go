package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for settlement operations.
type Handler struct {
	service *Service
	log     *zap.SugaredLogger
}

// NewHandler creates a new settlement handler.
func NewHandler(service *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{service: service, log: log}
}

// Routes returns the router for settlement endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// Create handles POST /settlements
// @Summary      Record a settlement payment
// @Description  Records that one member paid another directly; the payment cancels debt in the group ledger immediately
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body CreateSettlementRequest true "Settlement request"
// @Success      201 {object} response.APIResponse{data=expense.SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	record, err := h.service.CreateSettlement(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotSettleSelf),
			errors.Is(err, ErrNotGroupMember),
			errors.Is(err, expense.ErrMissingField),
			errors.Is(err, money.ErrInvalidAmount):
			response.BadRequest(w, err.Error())
		default:
			h.log.Errorw("failed to record settlement", "error", err)
			response.InternalError(w, "Failed to record settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, record.ToResponse())
}
