package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/titlechain/src/config"
	"github.com/username/titlechain/src/logger"
	"github.com/username/titlechain/src/model"
	"github.com/username/titlechain/src/models"
	"github.com/username/titlechain/src/services"
	"github.com/username/titlechain/src/utils"
)

type TitleHandler struct {
	titleService services.TitleService
}

func NewTitleHandler(service services.TitleService) *TitleHandler {
	return &TitleHandler{
		titleService: service,
	}
}

// HandleComputeTitle runs an ownership-chain computation for one tract.
func (h *TitleHandler) HandleComputeTitle(w http.ResponseWriter, r *http.Request) {
	if config.Cfg != nil && config.Cfg.MaxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, config.Cfg.MaxRequestBytes)
	}

	var req models.TitleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		logger.L.Warn("Failed to decode compute request", "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	report, err := h.titleService.ComputeTitle(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			logger.L.Warn("Compute request failed validation", "tractKey", req.TractKey, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		} else {
			logger.L.Error("Internal error computing title", "tractKey", req.TractKey, "error", err)
			utils.SendJSONError(w, "An internal error occurred while computing the title chain. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding JSON response for title report", "tractKey", req.TractKey, "error", err)
	}
}

// HandleGetTitleRuns serves the persisted run history, optionally filtered
// by tract_key, with ETag support like the report GETs elsewhere in the API.
func (h *TitleHandler) HandleGetTitleRuns(w http.ResponseWriter, r *http.Request) {
	tractKey := r.URL.Query().Get("tract_key")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			utils.SendJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := h.titleService.ListRuns(tractKey, limit)
	if err != nil {
		logger.L.Error("Error retrieving title run history", "tractKey", tractKey, "error", err)
		utils.SendJSONError(w, "Error retrieving title run history", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []model.TitleRun{}
	}

	currentETag, etagErr := utils.GenerateETag(runs)
	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETags := strings.Split(r.Header.Get("If-None-Match"), ",")
		for _, cETag := range clientETags {
			if strings.TrimSpace(cETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else if etagErr != nil {
		logger.L.Warn("Proceeding without ETag for run history", "error", etagErr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		logger.L.Error("Error encoding JSON response for run history", "tractKey", tractKey, "error", err)
	}
}
