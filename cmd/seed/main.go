// seed は指定ユーザー名義でデモ用の廃棄物記録を生成します。
// ローカル開発・デモ環境専用です。
//
// 使い方:
//
//	seed <username> [days]
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	authadapters "waste_backend/internal/feature/auth/adapters"
	wasteadapters "waste_backend/internal/feature/waste/adapters"
	wasteusecase "waste_backend/internal/feature/waste/usecase"
	infradb "waste_backend/internal/platform/db"
)

// baselines は種別ごとの1日あたり平均kgと標準偏差です。
var baselines = []struct {
	wasteType string
	mean, std float64
}{
	{"Paper", 15, 3},
	{"Plastic", 10, 2},
	{"PET", 8, 1.5},
	{"Toxic", 5, 1},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seed <username> [days]")
		os.Exit(1)
	}
	username := os.Args[1]
	days := 30
	if len(os.Args) >= 3 {
		if d, err := strconv.Atoi(os.Args[2]); err == nil && d > 0 {
			days = d
		}
	}

	db := infradb.OpenDB()
	ctx := context.Background()

	user, err := authadapters.NewUserRepository(db).FindByUsername(ctx, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "user %q not found: %v\n", username, err)
		os.Exit(1)
	}

	wasteUC := wasteusecase.NewWasteUsecase(wasteadapters.NewWasteRepository(db))

	count := 0
	now := time.Now()
	for d := days; d >= 1; d-- {
		ts := now.AddDate(0, 0, -d)
		weekend := ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday
		for _, b := range baselines {
			amount := b.mean + rand.NormFloat64()*b.std
			// 週末は紙が減りプラスチックが増える
			if weekend {
				switch b.wasteType {
				case "Paper":
					amount *= 0.7
				case "Plastic":
					amount *= 1.3
				}
			}
			if amount < 0.1 {
				amount = 0.1
			}
			if _, err := wasteUC.Record(ctx, user.ID, user.Department, b.wasteType, amount, ts); err != nil {
				fmt.Fprintln(os.Stderr, "failed to record entry:", err)
				os.Exit(1)
			}
			count++
		}
	}

	fmt.Printf("seeded %d waste entries over %d days for %s\n", count, days, username)
}
