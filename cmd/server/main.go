package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads a local .env file in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/partsgarage/inventory-api/internal/auth"
	"github.com/partsgarage/inventory-api/internal/config"
	"github.com/partsgarage/inventory-api/internal/database"
	"github.com/partsgarage/inventory-api/internal/database/migrations"
	"github.com/partsgarage/inventory-api/internal/handler"
	"github.com/partsgarage/inventory-api/internal/middleware"
	"github.com/partsgarage/inventory-api/internal/queue"
	"github.com/partsgarage/inventory-api/internal/repository"
	"github.com/partsgarage/inventory-api/internal/router"
	"github.com/partsgarage/inventory-api/internal/service"
	"github.com/partsgarage/inventory-api/internal/session"
)

func main() {
	// A missing .env is fine in production where the variables come
	// from the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Sessions live in Redis so they survive restarts and expire on
	// their own. When Redis is unreachable we fall back to the
	// in-memory store rather than refusing to boot.
	var sessions session.Store
	rdb := config.NewRedisClient()
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, using in-memory session store")
		sessions = session.NewMemoryStore()
	}
	defer sessions.Close()

	userRepo := repository.NewUserRepo(db)
	partRepo := repository.NewPartRepo(db)
	projectRepo := repository.NewProjectRepo(db)

	users := service.NewUserService(userRepo, cfg.BcryptCost, cfg.PasswordEntropy, cfg.AdminUsers)
	parts := service.NewPartService(partRepo)
	projects := service.NewProjectService(projectRepo, parts, users)

	gate := auth.NewGate(sessions, users)

	// The audit consumer drains the queue in the background. Publishing
	// is best-effort, so a broker outage only costs audit lines.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.Use(middleware.Session(gate))

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, sessions), limit)
	router.RegisterParts(e, handler.NewPartHandler(parts))
	router.RegisterProjects(e, handler.NewProjectHandler(projects, users))

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
