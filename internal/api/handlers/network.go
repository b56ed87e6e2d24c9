package handlers

import (
	"errors"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"

	"go.uber.org/zap"
)

// NetworkHandler exposes the stored delivery network.
type NetworkHandler struct {
	Repo   ports.NetworkRepository
	Depot  string
	Logger *zap.Logger
}

func (h *NetworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.Repo.LoadNetwork(r.Context())
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "no network stored")
		return
	}
	if err != nil {
		h.Logger.Error("load network failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NetworkFromDomain(n))
}

// Put replaces the stored network. The payload must be referentially
// consistent with the configured depot.
func (h *NetworkHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req dto.NetworkPayload
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	n := req.ToDomain()
	if err := n.Validate(h.Depot); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.SaveNetwork(r.Context(), n); err != nil {
		h.Logger.Error("save network failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.Logger.Info("network replaced",
		zap.Int("points", len(n.Points)),
		zap.Int("edges", len(n.Edges)),
		zap.Int("orders", len(n.Orders)),
	)
	writeJSON(w, r, http.StatusOK, dto.NetworkFromDomain(n))
}
