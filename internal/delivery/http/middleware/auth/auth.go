package http_auth_middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/moviepair/core/internal/delivery/http/common"
)

// TokenHeader carries the session token on authorized requests.
const TokenHeader = "X-session-token"

const emailKey = "session_email"

// SessionValidator resolves a token to the account email it belongs to.
type SessionValidator interface {
	SessionEmail(token string) (string, error)
}

// RequireSession rejects requests without a valid session token and
// stores the resolved email in the gin context for handlers downstream.
func RequireSession(sessions SessionValidator) gin.HandlerFunc {
	logger := slog.Default()
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(TokenHeader)
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + TokenHeader + " header",
			})
			ctx.Abort()
			return
		}

		email, err := sessions.SessionEmail(token)
		if err != nil || email == "" {
			logger.Warn("invalid session token")
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid token",
			})
			ctx.Abort()
			return
		}

		ctx.Set(emailKey, email)
		ctx.Next()
	}
}

// Email returns the account email stored by RequireSession.
func Email(ctx *gin.Context) string {
	return ctx.GetString(emailKey)
}
