package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gstinvoice/logger"
	"gstinvoice/models"
	"gstinvoice/repository"
)

// SellerHandler reads and updates the seller profile printed on invoices.
type SellerHandler struct {
	Repo repository.SellerRepository
}

func (h *SellerHandler) SaveSeller(w http.ResponseWriter, r *http.Request) {
	var seller models.Seller
	if err := json.NewDecoder(r.Body).Decode(&seller); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if strings.TrimSpace(seller.Name) == "" || strings.TrimSpace(seller.GSTIN) == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Name and GSTIN are required",
		})
		return
	}

	if err := h.Repo.SaveSeller(r.Context(), &seller); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("save seller")
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to save seller: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Seller saved",
		Data:    seller,
	})
}

func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	seller, err := repository.CurrentSeller(r.Context(), h.Repo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to load seller: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    seller,
	})
}
