package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgAuth "github.com/maisonvelour/storefront-backend/pkg/auth"
	"github.com/maisonvelour/storefront-backend/pkg/auth/session"
	"github.com/maisonvelour/storefront-backend/pkg/config"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/maisonvelour/storefront-backend/pkg/redis"
)

// admin-token mints a back-office access token and registers its session so
// operators can call the admin API without the storefront login flow.
func main() {
	userID := flag.String("user", "", "user id to embed in the token")
	roleFlag := flag.String("role", string(enums.AdminRoleStorekeeper), "admin role (owner|super_admin|sub_admin|storekeeper|salesperson)")
	revoke := flag.String("revoke", "", "revoke the session with this token id instead of minting")
	flag.Parse()

	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "admin-token"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer redisClient.Close()

	manager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	if *revoke != "" {
		if err := manager.Revoke(ctx, *revoke); err != nil {
			fmt.Fprintf(os.Stderr, "revoke failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("session revoked:", *revoke)
		return
	}

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "missing -user")
		os.Exit(1)
	}
	role, err := enums.ParseAdminRole(*roleFlag)
	if err != nil || !role.IsAdmin() {
		fmt.Fprintf(os.Stderr, "invalid admin role %q\n", *roleFlag)
		os.Exit(1)
	}

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: *userID,
		Role:   role,
		JTI:    accessID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint token failed: %v\n", err)
		os.Exit(1)
	}
	if _, err := manager.Generate(ctx, accessID); err != nil {
		fmt.Fprintf(os.Stderr, "register session failed: %v\n", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{"user_id": *userID, "actor_role": role.String(), "jti": accessID}), "admin token issued")
	fmt.Println(token)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
