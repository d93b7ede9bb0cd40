package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kitswap/kitswap-backend/internal/config"
	"github.com/kitswap/kitswap-backend/internal/database"
	"github.com/kitswap/kitswap-backend/internal/handler"
	"github.com/kitswap/kitswap-backend/internal/middleware"
	"github.com/kitswap/kitswap-backend/internal/queue"
	"github.com/kitswap/kitswap-backend/internal/repository"
	"github.com/kitswap/kitswap-backend/internal/router"
	"github.com/kitswap/kitswap-backend/internal/storage"
)

func main() {
	// A .env file is a convenience for local runs; deployments set real
	// environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("seed: %v", err)
	}

	rdb := config.NewRedisClient()

	// The moderation consumer keeps retrying the broker on its own; losing
	// it never blocks the API.
	go func() {
		if err := queue.StartModerationConsumer(); err != nil {
			log.Printf("moderation consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	items := repository.NewItemRepo(db)
	catalog := repository.NewCatalogRepo(db)
	files := storage.New(cfg.UploadDir)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, files), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog, items, users), config.LoadCacheConfig(), rdb)
	router.RegisterItems(e, handler.NewItemHandler(items, users), cfg.JWTSecret)
	router.RegisterUploads(e, handler.NewUploadHandler(files), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, users), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
