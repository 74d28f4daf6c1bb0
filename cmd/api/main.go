package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/config"
	appHTTP "github.com/versecrew/versecrew-backend-go/internal/handler/http"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/cron"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/jwt"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/rsi"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/sse"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/storage"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
	applicationService "github.com/versecrew/versecrew-backend-go/internal/service/application"
	commentService "github.com/versecrew/versecrew-backend-go/internal/service/comment"
	documentService "github.com/versecrew/versecrew-backend-go/internal/service/document"
	hrstatsService "github.com/versecrew/versecrew-backend-go/internal/service/hrstats"
	memberService "github.com/versecrew/versecrew-backend-go/internal/service/member"
	notificationService "github.com/versecrew/versecrew-backend-go/internal/service/notification"
	onboardingService "github.com/versecrew/versecrew-backend-go/internal/service/onboarding"
	organizationService "github.com/versecrew/versecrew-backend-go/internal/service/organization"
	performanceService "github.com/versecrew/versecrew-backend-go/internal/service/performance"
	userService "github.com/versecrew/versecrew-backend-go/internal/service/user"
	verificationService "github.com/versecrew/versecrew-backend-go/internal/service/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}

	if err := db.Migrate(context.Background(), "migrations"); err != nil {
		fmt.Println("Error running migrations:", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	orgRepo := postgresql.NewOrganizationRepository(db)
	memberRepo := postgresql.NewMemberRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	templateRepo := postgresql.NewOnboardingTemplateRepository(db)
	progressRepo := postgresql.NewOnboardingProgressRepository(db)
	reviewRepo := postgresql.NewPerformanceReviewRepository(db)
	goalRepo := postgresql.NewPerformanceGoalRepository(db)
	commentRepo := postgresql.NewCommentRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	verificationRepo := postgresql.NewVerificationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	hrstatsRepo := postgresql.NewHRStatsRepository(db)

	// Shared infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SSEExpiration)
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
	if err != nil {
		fmt.Println("Error initializing file storage:", err)
		os.Exit(1)
	}
	hub := sse.NewHub()
	pageFetcher := rsi.NewFetcher(cfg.RSI)

	// Services
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	userSvc := userService.NewUserService(db, userRepo)
	orgSvc := organizationService.NewOrganizationService(db, orgRepo, memberRepo, templateRepo, fileStorage)
	memberSvc := memberService.NewMemberService(db, memberRepo, orgRepo)
	applicationSvc := applicationService.NewApplicationService(db, applicationRepo, orgRepo, memberRepo, templateRepo, progressRepo, notifService)
	onboardingSvc := onboardingService.NewOnboardingService(db, templateRepo, progressRepo, memberRepo, notifService)
	performanceSvc := performanceService.NewPerformanceService(db, reviewRepo, goalRepo, memberRepo, fileStorage, notifService)
	commentSvc := commentService.NewCommentService(db, commentRepo, orgRepo, memberRepo, notifService)
	documentSvc := documentService.NewDocumentService(db, documentRepo, memberRepo, fileStorage, notifService)
	verificationSvc := verificationService.NewVerificationService(verificationRepo, userRepo, orgRepo, memberRepo, pageFetcher)
	hrstatsSvc := hrstatsService.NewHRStatsService(hrstatsRepo)

	// Handlers
	handlers := appHTTP.Handlers{
		User:         appHTTP.NewUserHandler(userSvc),
		Organization: appHTTP.NewOrganizationHandler(orgSvc),
		Member:       appHTTP.NewMemberHandler(memberSvc),
		Application:  appHTTP.NewApplicationHandler(applicationSvc),
		Onboarding:   appHTTP.NewOnboardingHandler(onboardingSvc),
		Performance:  appHTTP.NewPerformanceHandler(performanceSvc),
		Comment:      appHTTP.NewCommentHandler(commentSvc, memberRepo),
		Document:     appHTTP.NewDocumentHandler(documentSvc),
		Verification: appHTTP.NewVerificationHandler(verificationSvc),
		Notification: appHTTP.NewNotificationHandler(notifService, jwtService),
		HRStats:      appHTTP.NewHRStatsHandler(hrstatsSvc),
	}

	router := appHTTP.NewRouter(cfg, db, jwtService, memberRepo, handlers)

	// Background jobs
	scheduler := cron.NewScheduler()
	hrJobs := cron.NewHRJobs(progressRepo, verificationRepo, notificationRepo, memberRepo, notifService)
	hrJobs.RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	scheduler.Stop()
	notifService.Stop()
}
