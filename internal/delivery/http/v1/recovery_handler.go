package v1

import (
	"net/http"

	"storekit-backend/internal/usecase"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/utils"
)

type RecoveryHandler struct {
	recoveryUC *usecase.RecoveryUsecase
}

func NewRecoveryHandler(uc *usecase.RecoveryUsecase) *RecoveryHandler {
	return &RecoveryHandler{recoveryUC: uc}
}

// Sweep runs one abandoned cart pass. It is called by an external cron.
func (h *RecoveryHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	report, err := h.recoveryUC.ProcessAbandonedCarts(r.Context())
	if err != nil {
		utils.WriteAppError(w, r, apperror.InternalError(err))
		return
	}
	writeData(w, http.StatusOK, report)
}

func (h *RecoveryHandler) SaveCart(w http.ResponseWriter, r *http.Request) {
	var in usecase.SaveCartInput
	if !decodeJSON(w, r, &in) {
		return
	}

	cart, err := h.recoveryUC.SaveCart(r.Context(), r.PathValue("storeId"), in)
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}

// GetRecovery resolves a recovery link back to the saved cart.
func (h *RecoveryHandler) GetRecovery(w http.ResponseWriter, r *http.Request) {
	cart, err := h.recoveryUC.GetByToken(r.Context(), r.PathValue("token"))
	if err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}

func (h *RecoveryHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.recoveryUC.Unsubscribe(r.Context(), r.PathValue("token")); err != nil {
		utils.WriteAppError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed from cart reminders"})
}
