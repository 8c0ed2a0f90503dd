// resetpw はユーザー一覧表示とパスワード再設定を行う運用CLIです。
// トークンフローを経由しないため、オペレーター以外に配布しないでください。
//
// 使い方:
//
//	resetpw list
//	resetpw reset <username> <new_password>
package main

import (
	"context"
	"fmt"
	"os"

	authadapters "waste_backend/internal/feature/auth/adapters"
	authusecase "waste_backend/internal/feature/auth/usecase"
	infradb "waste_backend/internal/platform/db"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db := infradb.OpenDB()
	userRepo := authadapters.NewUserRepository(db)
	titleRepo := authadapters.NewJobTitleRepository(db)
	twoFactorRepo := authadapters.NewTwoFactorRepository(db)
	resetRepo := authadapters.NewPasswordResetRepository(db)
	authUC := authusecase.NewAuthUsecase(userRepo, titleRepo, twoFactorRepo, resetRepo, "")

	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		users, err := authUC.ListUsers(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to list users:", err)
			os.Exit(1)
		}
		fmt.Println("\nList of users:")
		fmt.Println("--------------------------------------------------")
		for _, u := range users {
			fmt.Printf("Username: %s, Email: %s, Department: %s\n", u.Username, u.Email, u.Department)
		}
		fmt.Println("--------------------------------------------------")

	case "reset":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		username, newPassword := os.Args[2], os.Args[3]
		if err := authUC.ResetPassword(ctx, username, newPassword); err != nil {
			fmt.Fprintf(os.Stderr, "failed to reset password for %q: %v\n", username, err)
			os.Exit(1)
		}
		fmt.Printf("Password for user %q has been reset\n", username)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  List users:     resetpw list")
	fmt.Println("  Reset password: resetpw reset <username> <new_password>")
}
