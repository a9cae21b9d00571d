package handlers

import (
	"net/http"

	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, overview, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRanking отдаёт топ отбивающих по среднему показателю.
func (h *DashboardHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.dashboardService.Ranking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"ranking": ranking,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
