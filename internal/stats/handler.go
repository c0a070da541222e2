package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for group statistics.
type Handler struct {
	service *Service
	log     *zap.SugaredLogger
}

// NewHandler creates a new stats handler.
func NewHandler(service *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{service: service, log: log}
}

// Routes returns the router for stats endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/group/{groupId}", h.GetGroupStats)
	return r
}

// StatsResponse is the display form of group statistics.
type StatsResponse struct {
	TotalSpent float64            `json:"total_spent"`
	Count      int                `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
}

// GetGroupStats handles GET /stats/group/{groupId}
// @Summary      Get group spending statistics
// @Description  Total spent, expense count, and per-category breakdown; settlements are excluded
// @Tags         stats
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=StatsResponse}
// @Router       /stats/group/{groupId} [get]
func (h *Handler) GetGroupStats(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		response.BadRequest(w, "Group ID is required")
		return
	}

	s, err := h.service.GroupStats(r.Context(), groupID)
	if err != nil {
		h.log.Errorw("failed to compute stats", "group_id", groupID, "error", err)
		response.InternalError(w, "Failed to compute stats")
		return
	}

	resp := StatsResponse{
		TotalSpent: s.TotalSpent.Float64(),
		Count:      s.Count,
		ByCategory: make(map[string]float64, len(s.ByCategory)),
	}
	for cat, total := range s.ByCategory {
		resp.ByCategory[string(cat)] = total.Float64()
	}

	response.JSON(w, http.StatusOK, resp)
}
