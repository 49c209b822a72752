package middleware

import (
	"crypto/subtle"
	"net/http"

	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/utils"
)

const CronSecretHeader = "X-Cron-Secret"

// CronSecretMiddleware guards scheduler endpoints with a shared secret. An
// empty secret disables the endpoint entirely.
func CronSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(CronSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				utils.WriteAppError(w, r, apperror.ErrUnauthorized())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
