package middleware

import (
	"context"
	"net/http"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/utils"
)

// AuthMiddleware resolves the merchant from a dashboard JWT. Tokens without a
// store_id claim are rejected since every admin route is store scoped.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			utils.WriteAppError(w, r, apperror.ErrUnauthorized())
			return
		}
		if claims.StoreID == "" {
			utils.WriteAppError(w, r, apperror.ErrForbidden())
			return
		}

		merchant := &domain.Merchant{
			UserID:  claims.UserID,
			Email:   claims.Email,
			StoreID: claims.StoreID,
			Role:    claims.Role,
		}

		ctx := context.WithValue(r.Context(), domain.MerchantContextKey, merchant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MerchantFromContext returns the merchant set by AuthMiddleware.
func MerchantFromContext(ctx context.Context) (*domain.Merchant, bool) {
	m, ok := ctx.Value(domain.MerchantContextKey).(*domain.Merchant)
	return m, ok && m != nil
}
