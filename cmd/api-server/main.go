// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"talenthub/internal/admin"
	"talenthub/internal/common/auth"
	"talenthub/internal/common/aws"
	"talenthub/internal/common/config"
	"talenthub/internal/common/database"
	"talenthub/internal/common/logger"
	"talenthub/internal/common/mailer"
	"talenthub/internal/common/msgraph"
	"talenthub/internal/common/observability"
	"talenthub/internal/employeelist"
	"talenthub/internal/jdanalysis"
	"talenthub/internal/outlook"
	"talenthub/internal/resume"
	"talenthub/internal/scoring"
	"talenthub/internal/search"
	"talenthub/internal/server"
	"talenthub/internal/store"
	"talenthub/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting API server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	tracer := observability.NewTracer(cfg.App.Name, cfg.Tracing.JaegerEndpoint)
	defer tracer.Shutdown()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := store.EnsureSchema(ctx, pg.DB); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch disabled, search falls back to database scans")
	}

	// --- Init AWS Clients (optional) ---
	var sesClient *aws.SESClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}
	var snsClient *aws.SNSClient
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	// --- Stores ---
	users := store.NewUserStore(pg.DB, log)
	resumes := store.NewResumeStore(pg.DB, log)
	jobs := store.NewJobOpeningStore(pg.DB, log)
	applications := store.NewApplicationStore(pg.DB, log)
	employees := store.NewEmployeeStore(pg.DB, log)
	resetTokens := store.NewResetTokenStore(pg.DB, log)
	analyses := store.NewAnalysisStore(pg.DB, log)

	// --- Domain Services ---
	lib := scoring.DefaultLibrary()
	if path := cfg.Analysis.DimensionRegistry; path != "" {
		reg, rerr := registry.LoadRegistry(path)
		if rerr != nil {
			zapLog.Fatal("dimension registry load failed", zap.Error(rerr))
		}
		lib = scoring.FromRegistry(reg)
		zapLog.Info("Dimension registry loaded", zap.String("path", path))
	}

	parser := resume.NewParser(lib.SeedSkills()...)
	index := search.NewResumeIndex(esClient, log)

	authManager := auth.NewManager(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenExpiry)*time.Minute, redis, log)
	google := auth.NewGoogleVerifier(
		cfg.Auth.OAuthProviders.Google.ClientID,
		cfg.Auth.OAuthProviders.Google.TokenInfoURL,
	)
	mail := mailer.New(sesClient, cfg.Integrations.AWS.SES.FromEmail,
		cfg.App.BaseURL, cfg.Integrations.AWS.SES.Enabled, log)

	analysis := jdanalysis.NewService(resumes, analyses, redis, lib, cfg.Analysis, log)
	employeeList := employeelist.NewService(employees, log)
	adminSvc := admin.NewService(resumes, users, analyses, employees, applications, log)

	var outlookSvc *outlook.Service
	if cfg.Integrations.Outlook.Enabled {
		graph := msgraph.NewClient(
			cfg.Integrations.Outlook.TenantID,
			cfg.Integrations.Outlook.ClientID,
			cfg.Integrations.Outlook.ClientSecret,
		)
		outlookSvc = outlook.NewService(graph, cfg.Integrations.Outlook.Mailbox,
			cfg.Integrations.Outlook.MaxMessages, parser, resumes, index,
			snsClient, cfg.Integrations.AWS.SNS.TopicARN, log)
		zapLog.Info("Outlook ingestion enabled", zap.String("mailbox", cfg.Integrations.Outlook.Mailbox))
	}

	srv := server.NewServer(server.Deps{
		Config:       cfg,
		Logger:       log,
		Obs:          obs,
		Tracer:       tracer,
		Auth:         authManager,
		Google:       google,
		Mailer:       mail,
		Users:        users,
		Resumes:      resumes,
		Jobs:         jobs,
		Applications: applications,
		Employees:    employees,
		ResetTokens:  resetTokens,
		Parser:       parser,
		Index:        index,
		Analysis:     analysis,
		EmployeeList: employeeList,
		Admin:        adminSvc,
		Outlook:      outlookSvc,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
