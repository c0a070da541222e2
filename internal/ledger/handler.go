package ledger

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for group balances.
type Handler struct {
	service *Service
	log     *zap.SugaredLogger
}

// NewHandler creates a new balance handler.
func NewHandler(service *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{service: service, log: log}
}

// Routes returns the router for balance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{groupId}", h.GetGroupBalances)
	return r
}

// BalancesResponse pairs the net balances with the payments that
// settle them.
type BalancesResponse struct {
	Balances map[string]float64 `json:"balances"`
	Payments []PaymentResponse  `json:"payments"`
}

// PaymentResponse is the display form of a payment instruction.
type PaymentResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// GetGroupBalances handles GET /balances/{groupId}
// @Summary      Get group balances and settlement plan
// @Description  Net balance per member (positive = the group owes them) plus the payment instructions that settle the group
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=BalancesResponse}
// @Failure      500 {object} response.APIResponse
// @Router       /balances/{groupId} [get]
func (h *Handler) GetGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		response.BadRequest(w, "Group ID is required")
		return
	}

	balances, payments, err := h.service.Balances(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrInconsistentLedger) {
			h.log.Errorw("ledger conservation violated", "group_id", groupID, "error", err)
			response.Error(w, http.StatusInternalServerError, "INCONSISTENT_LEDGER", err.Error())
			return
		}
		h.log.Errorw("failed to compute balances", "group_id", groupID, "error", err)
		response.InternalError(w, "Failed to compute balances")
		return
	}

	resp := BalancesResponse{
		Balances: make(map[string]float64, len(balances)),
		Payments: make([]PaymentResponse, len(payments)),
	}
	for userID, b := range balances {
		resp.Balances[userID] = b.Float64()
	}
	for i, p := range payments {
		resp.Payments[i] = PaymentResponse{From: p.From, To: p.To, Amount: p.Amount.Float64()}
	}

	response.JSON(w, http.StatusOK, resp)
}
