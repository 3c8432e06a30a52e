package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	// AdminTokenHeader заголовок с токеном администратора
	AdminTokenHeader    = "X-Admin-Token"
	// WebhookSecretHeader заголовок с общим секретом внешней системы бронирования
	WebhookSecretHeader = "X-Webhook-Secret"

	msgAdminDisabled   = "admin API is disabled"
	msgInvalidToken    = "invalid or missing admin token"
	msgInvalidSecret   = "invalid or missing webhook secret"
	webhookStatusError = "error"
)

// AdminToken пропускает запрос только с верным X-Admin-Token
// Пустой токен в конфигурации закрывает админские маршруты полностью
func AdminToken(token string, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handlers.RespondForbidden(w, msgAdminDisabled)
				return
			}

			if !secretEqual(r.Header.Get(AdminTokenHeader), token) {
				logger.Warn("%s %s - Rejected admin request: invalid token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WebhookSecret проверяет X-Webhook-Secret, если секрет задан в конфигурации
// Ошибка отдается в формате ответа вебхука {status, message}
func WebhookSecret(secret string, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secretEqual(r.Header.Get(WebhookSecretHeader), secret) {
				logger.Warn("%s %s - Rejected webhook: invalid secret", r.Method, r.URL.Path)
				handlers.RespondJSON(w, http.StatusUnauthorized, map[string]string{
					"status":  webhookStatusError,
					"message": msgInvalidSecret,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func secretEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
