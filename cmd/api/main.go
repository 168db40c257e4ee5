package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/placement/app"
	"github.com/joefazee/placement/app/admin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/app/betting"
	"github.com/joefazee/placement/app/companies"
	"github.com/joefazee/placement/app/database"
	apiDoc "github.com/joefazee/placement/app/doc"
	"github.com/joefazee/placement/app/individuals"
	"github.com/joefazee/placement/app/settlement"
	"github.com/joefazee/placement/app/user"
	_ "github.com/joefazee/placement/docs"
	"github.com/joefazee/placement/internal/cache"
	"github.com/joefazee/placement/internal/deps"
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/metrics"
	"github.com/joefazee/placement/internal/router"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/security"
)

// @title Placement API
// @version 1.0
// @description Virtual-token betting on campus placement outcomes.

// @contact.name API Support Team

// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	zl := logger.NewZeroLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel), logger.Fields{
		"service": "placement",
		"env":     cfg.Env,
	})

	db, err := database.New(&cfg.DB)
	if err != nil {
		zl.Fatal(err, map[string]interface{}{"stage": "database"})
	}
	defer func() { _ = database.Close(db) }()

	tokenMaker, err := security.NewPasetoMaker(cfg.User.SymmetricKey)
	if err != nil {
		zl.Fatal(err, map[string]interface{}{"stage": "token maker"})
	}

	permissionCache, err := cache.New[[]string](cfg.Cache, "permissions")
	if err != nil {
		zl.Fatal(err, map[string]interface{}{"stage": "cache"})
	}
	leaderboardCache, err := cache.New[[]user.LeaderboardEntry](cfg.Cache, "leaderboard")
	if err != nil {
		zl.Fatal(err, map[string]interface{}{"stage": "cache"})
	}

	publisher := events.New(cfg.Events)
	defer func() { _ = publisher.Close() }()

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), zl, publisher)
	initServices(container, cfg, permissionCache, leaderboardCache)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), api.CorsMiddleware(), api.RequestLogger(zl), metrics.Middleware())

	engine.GET("/healthz", api.HealthCheck(cfg.Env, pinger(db)))
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	apiDoc.Init(engine, cfg.Env)

	mountRoutes(engine, container)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("starting placement API", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal(err, map[string]interface{}{"stage": "listen"})
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error(err, map[string]interface{}{"stage": "shutdown"})
	}
}

// initServices registers every module. Order matters: companies reads the
// individuals repository and admin needs settlement.
func initServices(container *deps.Container,
	cfg *app.Config,
	permissions cache.Cache[[]string],
	board cache.Cache[[]user.LeaderboardEntry]) {
	individuals.InitServices(container)
	companies.InitServices(container)
	settlement.InitServices(container, &cfg.Settlement)
	betting.InitServices(container, &cfg.Betting)
	admin.InitServices(container)
	user.InitServices(container, &cfg.User, permissions, board)
}

func mountRoutes(engine *gin.Engine, container *deps.Container) {
	mounter := router.NewMounter(container, "/api/v1")

	mounter.Public(engine).Mount(user.MountPublic)

	mounter.Authenticated(engine, user.Authenticator(container)).Mount(
		user.MountAuthenticated,
		companies.MountAuthenticated,
		individuals.MountAuthenticated,
		betting.MountAuthenticated,
		companies.MountAdmin,
		admin.MountAdmin,
	)
}

func pinger(db *gorm.DB) api.PingFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
