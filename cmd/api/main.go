package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	authadapter "tasktracker/internal/adapter/auth"
	"tasktracker/internal/adapter/blob"
	dbadapter "tasktracker/internal/adapter/db"
	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/handlers"
	httpmiddleware "tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/memory"
	"tasktracker/internal/app/service"
	"tasktracker/internal/config"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/logging"
	"tasktracker/pkg/translator"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	blobs, err := blob.NewDiskStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal("failed to prepare upload directory", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	deps, db := buildStorage(cfg, logger)
	deps.Blobs = blobs
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
	}

	completion := service.NewCompletionEngine(deps)
	taskService := service.NewTaskService(deps, completion)
	userService := service.NewUserService(
		deps,
		authadapter.NewBcryptHasher(0),
		authadapter.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Bootstrap.Enabled() {
		if _, err := userService.EnsureBootstrapManager(ctx, domain.CreateUserInput{
			Username: cfg.Bootstrap.Username,
			Email:    cfg.Bootstrap.Email,
			FullName: cfg.Bootstrap.FullName,
			Password: cfg.Bootstrap.Password,
		}); err != nil {
			logger.Fatal("failed to create bootstrap manager", zap.Error(err))
		}
	}

	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.MaxMultipartMemory = 8 << 20

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:   handlers.NewHealthHandler(cfg.StorageDriver, pinger, blobs),
		Auth:     handlers.NewAuthHandler(userService),
		Users:    handlers.NewUserHandler(userService),
		Projects: handlers.NewProjectHandler(service.NewProjectService(deps)),
		Tasks:    handlers.NewTaskHandler(taskService),
		Subtasks: handlers.NewSubtaskHandler(service.NewSubtaskService(deps)),
		Comments: handlers.NewCommentHandler(service.NewCommentService(deps)),
		Files:    handlers.NewFileHandler(service.NewFileService(deps), cfg.MaxUploadBytes),
	}, userService)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to shut down server", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", server.Addr), zap.String("storage", cfg.StorageDriver))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

// buildStorage returns the repositories for the configured driver. The
// database handle is nil for the memory driver.
func buildStorage(cfg *config.Config, logger *zap.Logger) (service.Deps, *sqlx.DB) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return service.Deps{
			Tx:       store,
			Users:    memory.NewUserRepository(store),
			Projects: memory.NewProjectRepository(store),
			Tasks:    memory.NewTaskRepository(store),
			Subtasks: memory.NewSubtaskRepository(store),
			Comments: memory.NewCommentRepository(store),
			Files:    memory.NewFileRepository(store),
		}, nil
	case config.StorageMySQL:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		return service.Deps{
			Tx:       dbadapter.NewTxManager(db),
			Users:    dbadapter.NewUserRepository(db),
			Projects: dbadapter.NewProjectRepository(db),
			Tasks:    dbadapter.NewTaskRepository(db),
			Subtasks: dbadapter.NewSubtaskRepository(db),
			Comments: dbadapter.NewCommentRepository(db),
			Files:    dbadapter.NewFileRepository(db),
		}, db
	default:
		logger.Fatal("unknown storage driver", zap.String("driver", cfg.StorageDriver))
		return service.Deps{}, nil
	}
}
