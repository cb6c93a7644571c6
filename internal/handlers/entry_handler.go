package handlers

import (
	"net/http"
	"strconv"

	"registru-backend/internal/models"
	"registru-backend/internal/services"
	"registru-backend/pkg/utils"
)

type EntryHandler struct {
	importService *services.ImportService
	yearService   *services.YearService
}

func NewEntryHandler(importService *services.ImportService, yearService *services.YearService) *EntryHandler {
	return &EntryHandler{importService: importService, yearService: yearService}
}

// ListEntries handles GET /api/entries?year=YYYY
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	yearNumber, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "year query parameter is required")
		return
	}

	year, err := h.yearService.GetByYear(r.Context(), yearNumber)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "registry year not found")
		return
	}

	entries, err := h.importService.ListEntries(r.Context(), year.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []*models.ManifestEntry{}
	}
	utils.JSON(w, http.StatusOK, entries)
}
