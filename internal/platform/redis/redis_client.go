// Package redis はRedisクライアントの生成を提供します。
// ログインチャレンジの保持と集計キャッシュの両方がこの接続を共有します。
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient はREDIS_HOST/REDIS_PORT/REDIS_PASSWORD/REDIS_DBから
// クライアントを生成し、Pingで到達性を確認します。ホスト未設定時は
// localhost:6379を使用します。
func NewRedisClient() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	addr := host + ":" + port
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
