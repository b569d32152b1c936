package main

import (
	"context"
	"log"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/ammarakk/todo-backend/config"
	"github.com/ammarakk/todo-backend/db"
	authhandler "github.com/ammarakk/todo-backend/internal/auth/handler"
	authrepo "github.com/ammarakk/todo-backend/internal/auth/repository/postgres"
	authservice "github.com/ammarakk/todo-backend/internal/auth/service"
	"github.com/ammarakk/todo-backend/internal/obs"
	todohandler "github.com/ammarakk/todo-backend/internal/todo/handler"
	todorepo "github.com/ammarakk/todo-backend/internal/todo/repository/postgres"
	todoservice "github.com/ammarakk/todo-backend/internal/todo/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer dbPool.Close()

	obs.Init()

	userRepo := authrepo.NewPostgresRepository(dbPool)
	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService, cfg)
	authHandler := authhandler.NewAuthHandler(userService)

	todoRepo := todorepo.NewPostgresRepository(dbPool)
	todoService := todoservice.NewTodoService(todoRepo)
	todoHandler := todohandler.NewTodoHandler(todoService)

	app := fiber.New()
	app.Use(obs.RequestLogger(), obs.Instrument())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(obs.Handler()))

	authhandler.RegisterRoutes(app, authHandler)
	todohandler.RegisterRoutes(app, todoHandler, authHandler.RequireAuth())

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
