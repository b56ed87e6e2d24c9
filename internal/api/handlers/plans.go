package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"strings"

	"go.uber.org/zap"
)

type PlanHandler struct {
	Service        *services.PlanService
	DefaultDepot   string
	DefaultDrivers int
	MaxDrivers     int
	Logger         *zap.Logger
}

// Plan clusters the orders among the requested drivers and returns one
// sequenced route per driver.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	drivers := req.Drivers
	if drivers == 0 {
		drivers = h.DefaultDrivers
	}
	if drivers < 1 || drivers > h.MaxDrivers {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("drivers must be between 1 and %d", h.MaxDrivers))
		return
	}

	depot := strings.TrimSpace(req.Depot)
	if depot == "" {
		depot = h.DefaultDepot
	}

	svcReq := services.PlanRequest{Drivers: drivers, Depot: depot}
	if req.Network != nil {
		n := req.Network.ToDomain()
		if err := n.Validate(depot); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		svcReq.Network = &n
	}

	plan, err := h.Service.Plan(r.Context(), svcReq)
	if err != nil {
		status, msg := planErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("plan failed", zap.Error(err))
		}
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanFromDomain(plan))
}

func planErrorStatus(err error) (int, string) {
	var rie *domain.ReferentialIntegrityError
	switch {
	case errors.Is(err, services.ErrEmptyInput):
		return http.StatusBadRequest, services.ErrEmptyInput.Error()
	case errors.Is(err, services.ErrInvalidDriverCount):
		return http.StatusBadRequest, services.ErrInvalidDriverCount.Error()
	case errors.Is(err, services.ErrInvalidEdgeWeight):
		return http.StatusBadRequest, services.ErrInvalidEdgeWeight.Error()
	case errors.As(err, &rie):
		return http.StatusBadRequest, rie.Error()
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound, "no network stored"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
