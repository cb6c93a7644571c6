package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"registru-backend/internal/importer"
	"registru-backend/internal/services"
	"registru-backend/pkg/utils"
)

// ImportHandler handles the preview/confirm import flow.
type ImportHandler struct {
	service        *services.ImportService
	maxUploadBytes int64
}

func NewImportHandler(service *services.ImportService, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Preview handles POST /api/import/preview. The manifest file and the
// per-batch manual fields arrive as one multipart form; nothing is written
// to the registry here.
func (h *ImportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	templateID, err := strconv.Atoi(r.FormValue("template_id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "template_id is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	req := &services.PreviewRequest{
		TemplateID:   templateID,
		FileName:     header.Filename,
		Data:         data,
		SessionToken: r.FormValue("session_token"),
		Manual: importer.ManualFields{
			ManifestNumber:   r.FormValue("manifest_number"),
			PermitNumber:     r.FormValue("permit_number"),
			RegistrationDate: r.FormValue("registration_date"),
			OperationRequest: r.FormValue("operation_request"),
			ShipName:         r.FormValue("ship_name"),
			FlagName:         r.FormValue("flag_name"),
		},
	}

	result, rowErrs, err := h.service.Preview(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrNoRegistryYear) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(rowErrs) > 0 {
		utils.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": rowErrs,
		})
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// Confirm handles POST /api/import/confirm.
func (h *ImportHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionToken == "" {
		utils.Error(w, http.StatusBadRequest, "session_token is required")
		return
	}

	result, err := h.service.Confirm(r.Context(), req.SessionToken)
	if err != nil {
		if errors.Is(err, services.ErrSessionExpired) {
			utils.Error(w, http.StatusGone, err.Error())
			return
		}
		// A mid-batch failure still reports the rows committed before it.
		status := http.StatusInternalServerError
		payload := map[string]interface{}{"error": err.Error()}
		if result != nil {
			payload["created"] = result.Created
		}
		utils.JSON(w, status, payload)
		return
	}

	utils.JSON(w, http.StatusCreated, result)
}
