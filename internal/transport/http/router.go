package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/raqa-app/auth-service/internal/auth"
	"github.com/raqa-app/auth-service/internal/transport/http/handler"
	"github.com/raqa-app/auth-service/internal/transport/http/middleware"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, tokens *auth.TokenIssuer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)

	// Password-reset flow: request a code, verify it, then set the new
	// password. Verification does not consume the code; completion clears it.
	r.POST("/send-code", authHandler.SendCode)
	r.POST("/verify-code", authHandler.VerifyCode)
	r.POST("/reset-password", authHandler.ResetPassword)

	r.GET("/me", middleware.Auth(tokens), authHandler.Me)

	return r
}
