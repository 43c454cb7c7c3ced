package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
)

const AdminTokenHeader = "X-Admin-Token"

const (
	msgMissingAdminToken = "отсутствует токен администратора"
	msgInvalidAdminToken = "неверный токен администратора"
	msgAdminDisabled     = "административный доступ не настроен"
)

// AdminAuth проверяет X-Admin-Token; пустой token закрывает доступ полностью
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handlers.RespondForbidden(w, msgAdminDisabled)
				return
			}

			provided := r.Header.Get(AdminTokenHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, msgMissingAdminToken)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgInvalidAdminToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
