package v1

import (
	"net/http"

	"storekit-backend/internal/domain"
	"storekit-backend/internal/usecase"
	"storekit-backend/pkg/utils"
)

type ShippingHandler struct {
	shippingUC *usecase.ShippingUsecase
}

func NewShippingHandler(uc *usecase.ShippingUsecase) *ShippingHandler {
	return &ShippingHandler{shippingUC: uc}
}

// Quote prices shipping for a storefront cart.
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req usecase.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.shippingUC.Quote(r.Context(), r.PathValue("storeId"), req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, quote)
}

func (h *ShippingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dest := domain.Destination{State: q.Get("state"), Pincode: q.Get("pincode")}

	res, err := h.shippingUC.CheckAvailability(r.Context(), r.PathValue("storeId"), dest)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *ShippingHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	storeID, ok := merchantStore(w, r)
	if !ok {
		return
	}

	shipping, err := h.shippingUC.GetStoreShipping(r.Context(), storeID)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, shipping)
}

type updateShippingConfigReq struct {
	Settings domain.StoreShippingSettings `json:"settings"`
	Config   domain.ShippingConfig        `json:"config"`
}

func (h *ShippingHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	storeID, ok := merchantStore(w, r)
	if !ok {
		return
	}
	var req updateShippingConfigReq
	if !decodeJSON(w, r, &req) {
		return
	}

	warnings, err := h.shippingUC.UpdateShippingConfig(r.Context(), storeID, req.Config, req.Settings)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}
	writeData(w, http.StatusOK, map[string]interface{}{"warnings": warnings})
}

// ValidateConfig reports findings without saving anything.
func (h *ShippingHandler) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ShippingConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}

	blocking, advisory := usecase.CheckZoneConfig(cfg.Zones)
	if blocking == nil {
		blocking = []string{}
	}
	if advisory == nil {
		advisory = []string{}
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"valid":    len(blocking) == 0,
		"errors":   blocking,
		"warnings": advisory,
	})
}
