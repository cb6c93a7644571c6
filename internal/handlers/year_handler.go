package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"registru-backend/internal/models"
	"registru-backend/internal/services"
	"registru-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type YearHandler struct {
	service *services.YearService
}

func NewYearHandler(service *services.YearService) *YearHandler {
	return &YearHandler{service: service}
}

// ListYears handles GET /api/years
func (h *YearHandler) ListYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.ListYears(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if years == nil {
		years = []*models.RegistryYear{}
	}
	utils.JSON(w, http.StatusOK, years)
}

// CreateYear handles POST /api/years
func (h *YearHandler) CreateYear(w http.ResponseWriter, r *http.Request) {
	var req models.CreateYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	year, err := h.service.CreateYear(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, year)
}

// ActivateYear handles POST /api/years/{id}/activate
func (h *YearHandler) ActivateYear(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid year ID")
		return
	}

	if err := h.service.ActivateYear(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "year activated"})
}
