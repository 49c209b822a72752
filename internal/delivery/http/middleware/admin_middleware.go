package middleware

import (
	"net/http"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/utils"
)

// StoreAdminMiddleware lets through store owners and admins only.
// MUST be used AFTER AuthMiddleware.
func StoreAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		merchant, ok := r.Context().Value(domain.MerchantContextKey).(*domain.Merchant)
		if !ok || merchant == nil {
			utils.WriteAppError(w, r, apperror.ErrUnauthorized())
			return
		}

		if merchant.Role != domain.RoleOwner && merchant.Role != domain.RoleAdmin {
			utils.WriteAppError(w, r, apperror.ErrForbidden())
			return
		}

		next.ServeHTTP(w, r)
	})
}
