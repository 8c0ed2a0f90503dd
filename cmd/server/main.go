package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"waste_backend/internal/app/router"
	authadapters "waste_backend/internal/feature/auth/adapters"
	authhandler "waste_backend/internal/feature/auth/transport/handler"
	authusecase "waste_backend/internal/feature/auth/usecase"
	forecasthandler "waste_backend/internal/feature/forecast/transport/handler"
	forecastusecase "waste_backend/internal/feature/forecast/usecase"
	wasteadapters "waste_backend/internal/feature/waste/adapters"
	wastehandler "waste_backend/internal/feature/waste/transport/handler"
	wasteusecase "waste_backend/internal/feature/waste/usecase"
	"waste_backend/internal/platform/cache"
	"waste_backend/internal/platform/challenge"
	infradb "waste_backend/internal/platform/db"
	jwtmw "waste_backend/internal/platform/jwt"
	infraredis "waste_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis（任意。未接続でも起動する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache and two-step login challenges.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	titleRepo := authadapters.NewJobTitleRepository(db)
	twoFactorRepo := authadapters.NewTwoFactorRepository(db)
	resetRepo := authadapters.NewPasswordResetRepository(db)

	// Redisキャッシュでラップ（日次集計のみ）
	var wasteRepo wasteusecase.WasteRepository = wasteadapters.NewWasteRepository(db)
	if rdb != nil {
		wasteRepo = cache.NewCachingWasteRepository(rdb, 5*time.Minute, wasteRepo, "waste")
	}

	issuer := os.Getenv("TOTP_ISSUER")
	if issuer == "" {
		issuer = "Waste Management App"
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, titleRepo, twoFactorRepo, resetRepo, issuer)
	wasteUC := wasteusecase.NewWasteUsecase(wasteRepo)
	forecastUC := forecastusecase.NewForecastUsecase(wasteUC)

	// 2段階ログインのチャレンジストア（Redis接続時のみ）
	var challenges authhandler.ChallengeStore
	if rdb != nil {
		challenges = challenge.NewStore(rdb, "2fa")
	}

	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, challenges, tokens)
	profileH := authhandler.NewProfileHandler(authUC)
	adminH := authhandler.NewAdminHandler(authUC)
	wasteH := wastehandler.NewWasteHandler(wasteUC, authUC)
	forecastH := forecasthandler.NewForecastHandler(forecastUC)

	// ルータ生成
	router := router.NewRouter(authH, profileH, adminH, wasteH, forecastH, userRepo)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
