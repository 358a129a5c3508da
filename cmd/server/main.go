package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/coaching-app/internal/api"
	"alcyxob/coaching-app/internal/config"
	"alcyxob/coaching-app/internal/logging"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/memory"
	"alcyxob/coaching-app/internal/repository/mongo"
	"alcyxob/coaching-app/internal/service"
	"alcyxob/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

type repositories struct {
	users     repository.UserRepository
	plans     repository.TrainingPlanRepository
	templates repository.TemplateRepository
	close     func()
}

func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:     memory.NewUserRepository(store),
			plans:     memory.NewTrainingPlanRepository(store),
			templates: memory.NewTemplateRepository(store),
			close:     func() {},
		}, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	mongo.EnsureIndexes(ctx, db)

	return &repositories{
		users:     mongo.NewMongoUserRepository(db),
		plans:     mongo.NewMongoTrainingPlanRepository(db),
		templates: mongo.NewMongoTemplateRepository(db),
		close: func() {
			log.Info("disconnecting MongoDB")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Errorf("failed to disconnect MongoDB: %s", err)
			}
		},
	}, nil
}

// setupMetrics builds the manager the services count with. The gatherer is nil when metrics
// are disabled, in which case the counters live on a private registry that is never exposed.
func setupMetrics(cfg config.MetricsConfig) (*metrics.Manager, prometheus.Gatherer) {
	registry := prometheus.NewRegistry()
	m := metrics.NewManager(cfg.Namespace, "server", registry)
	if !cfg.Enabled {
		return m, nil
	}
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m, registry
}

// @title Coaching API
// @version 1.0
// @description Training plans authored by coaches and reported on by athletes.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Info("starting coaching server")

	repos, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("could not open storage: %s", err)
	}
	defer repos.close()

	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %s", err)
		}
	} else {
		log.Warn("no S3 bucket configured, exercise media is disabled")
	}

	m, gatherer := setupMetrics(cfg.Metrics)
	var routeMetrics *metrics.Manager
	if gatherer != nil {
		routeMetrics = m
	}

	presignExpiry := cfg.S3.PresignExpiry
	if presignExpiry <= 0 {
		presignExpiry = storage.DefaultPresignedURLExpiry
	}

	svc := api.Services{
		Auth:      service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration, plantree.NewID),
		Plans:     service.NewPlanService(repos.plans, repos.users, repos.templates, fileStorage, m, plantree.NewID),
		Progress:  service.NewProgressService(repos.plans, fileStorage, m, presignExpiry),
		Templates: service.NewTemplateService(repos.templates, repos.plans, repos.users, m, plantree.NewID),
		Dashboard: service.NewDashboardService(repos.plans, repos.users, cfg.Dashboard.Location(), time.Now),
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.Templates.SeedPredefined(seedCtx); err != nil {
		log.Errorf("failed to seed predefined templates: %s", err)
	}
	seedCancel()

	if !cfg.Server.GinDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, svc, routeMetrics, gatherer)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Info("server exiting")
}
