package v1

import (
	"net/http"

	"storekit-backend/internal/domain"
	"storekit-backend/internal/usecase"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/utils"
)

type CourierHandler struct {
	fulfillmentUC *usecase.FulfillmentUsecase
}

func NewCourierHandler(uc *usecase.FulfillmentUsecase) *CourierHandler {
	return &CourierHandler{fulfillmentUC: uc}
}

// writeResult sends courier results as 200 on success and 502 when the
// courier reported a failure.
func writeResult(w http.ResponseWriter, success bool, v interface{}) {
	status := http.StatusOK
	if !success {
		status = http.StatusBadGateway
	}
	writeData(w, status, v)
}

func (h *CourierHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.fulfillmentUC.ListProviders())
}

func (h *CourierHandler) CompareRates(w http.ResponseWriter, r *http.Request) {
	var req domain.RateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeData(w, http.StatusOK, h.fulfillmentUC.CompareRates(r.Context(), req))
}

func (h *CourierHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	var req domain.RateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.fulfillmentUC.GetRates(r.Context(), r.PathValue("provider"), req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res.Success, res)
}

func (h *CourierHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	var req domain.ShipmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OrderID == "" || req.Delivery.Pincode == "" {
		utils.WriteAppError(w, r, apperror.Validation("orderId and delivery pincode are required"))
		return
	}

	res, err := h.fulfillmentUC.CreateShipment(r.Context(), r.PathValue("provider"), req)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res.Success, res)
}

func (h *CourierHandler) TrackShipment(w http.ResponseWriter, r *http.Request) {
	res, err := h.fulfillmentUC.TrackShipment(r.Context(), r.PathValue("provider"), r.PathValue("awb"))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res.Success, res)
}

func (h *CourierHandler) CancelShipment(w http.ResponseWriter, r *http.Request) {
	res, err := h.fulfillmentUC.CancelShipment(r.Context(), r.PathValue("provider"), r.PathValue("awb"))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res.Success, res)
}

func (h *CourierHandler) GenerateLabel(w http.ResponseWriter, r *http.Request) {
	res, err := h.fulfillmentUC.GenerateLabel(r.Context(), r.PathValue("provider"), r.PathValue("shipmentId"))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeResult(w, res.Success, res)
}

func (h *CourierHandler) Serviceability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	delivery := q.Get("delivery")
	if delivery == "" {
		utils.WriteAppError(w, r, apperror.Validation("delivery pincode is required"))
		return
	}

	ok, err := h.fulfillmentUC.CheckServiceability(r.Context(), r.PathValue("provider"), q.Get("pickup"), delivery)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"serviceable": ok})
}

func (h *CourierHandler) ValidateCredentials(w http.ResponseWriter, r *http.Request) {
	if err := h.fulfillmentUC.ValidateCredentials(r.Context(), r.PathValue("provider")); err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"valid": true})
}
