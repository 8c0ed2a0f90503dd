package router

import (
	"github.com/gin-gonic/gin"

	authhandler "waste_backend/internal/feature/auth/transport/handler"
	forecasthandler "waste_backend/internal/feature/forecast/transport/handler"
	wastehandler "waste_backend/internal/feature/waste/transport/handler"
	"waste_backend/internal/platform/http/handler"
	jwtmw "waste_backend/internal/platform/jwt"
)

func NewRouter(authH *authhandler.AuthHandler, profileH *authhandler.ProfileHandler,
	adminH *authhandler.AdminHandler, wasteH *wastehandler.WasteHandler,
	forecastH *forecasthandler.ForecastHandler, users jwtmw.UserFetcher) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authH.Signup)
	// ログイン（JWT 発行、2FA有効時は challenge 発行）
	r.POST("/login", authH.Login)
	// 2段階ログインの2ステップ目
	r.POST("/login/2fa", authH.LoginTwoFactor)
	// パスワードリセット（セルフサービス）
	r.POST("/password-reset/request", authH.RequestPasswordReset)
	r.POST("/password-reset/confirm", authH.ConfirmPasswordReset)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/me", profileH.Me)
		auth.PUT("/me", profileH.UpdateMe)
		auth.POST("/2fa/setup", profileH.SetupTwoFactor)
		auth.POST("/2fa/verify", profileH.VerifyTwoFactor)
		auth.POST("/2fa/disable", profileH.DisableTwoFactor)

		auth.GET("/waste", wasteH.List)
		auth.POST("/waste", wasteH.Record)
		auth.GET("/waste/summary", wasteH.Summary)
		auth.GET("/forecast", forecastH.Forecast)
	}

	// 管理者専用のルート（職位名で判定）
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.AdminRequired(users))
	{
		admin.GET("/users", adminH.ListUsers)
		admin.DELETE("/users/:username", adminH.DeleteUser)
		admin.POST("/users/:username/reset-password", adminH.ResetUserPassword)
		admin.GET("/job-titles", adminH.ListJobTitles)
	}

	return r
}
