package handlers

import (
	"net/http"

	"registru-backend/internal/models"
	"registru-backend/internal/services"
	"registru-backend/pkg/utils"
)

type LookupHandler struct {
	service *services.LookupService
}

func NewLookupHandler(service *services.LookupService) *LookupHandler {
	return &LookupHandler{service: service}
}

// Sync handles POST /api/lookups/sync, the batch reconciliation sweep.
func (h *LookupHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SyncAll(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// ListContainerTypes handles GET /api/lookups/container-types
func (h *LookupHandler) ListContainerTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListContainerTypes(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if types == nil {
		types = []*models.ContainerType{}
	}
	utils.JSON(w, http.StatusOK, types)
}

// ListShips handles GET /api/lookups/ships
func (h *LookupHandler) ListShips(w http.ResponseWriter, r *http.Request) {
	ships, err := h.service.ListShips(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ships == nil {
		ships = []*models.Ship{}
	}
	utils.JSON(w, http.StatusOK, ships)
}

// ListFlags handles GET /api/lookups/flags
func (h *LookupHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.service.ListFlags(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if flags == nil {
		flags = []*models.Flag{}
	}
	utils.JSON(w, http.StatusOK, flags)
}
