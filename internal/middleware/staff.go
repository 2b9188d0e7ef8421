package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"theatre-box-office/internal/utils"
)

// RequireStaffToken guards staff-only routes with a bearer token checked
// against an Argon2id hash. An empty hash leaves the routes open.
func RequireStaffToken(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokenHash == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="doorlist"`)
				writeError(w, http.StatusUnauthorized, "staff token required")
				return
			}

			valid, err := utils.VerifyToken(token, tokenHash)
			if err != nil {
				logger.Error("staff token hash is unusable", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !valid {
				logger.Warn("rejected staff token",
					zap.String("path", r.URL.Path),
					zap.String("remote", getClientIP(r)))
				writeError(w, http.StatusUnauthorized, "invalid staff token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
