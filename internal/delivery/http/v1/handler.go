package v1

import (
	"net/http"

	"storekit-backend/internal/delivery/http/middleware"
	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies; carts and shipment payloads are small.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.WriteAppError(w, r, apperror.Validation("Invalid request payload"))
		return false
	}
	return true
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	utils.WriteJSON(w, status, domain.Response{Success: status < http.StatusBadRequest, Data: data})
}

// merchantStore returns the store the authenticated merchant manages.
func merchantStore(w http.ResponseWriter, r *http.Request) (string, bool) {
	m, ok := middleware.MerchantFromContext(r.Context())
	if !ok {
		utils.WriteAppError(w, r, apperror.ErrUnauthorized())
		return "", false
	}
	return m.StoreID, true
}
