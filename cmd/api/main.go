package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qssun/attendance-backend-go/internal/config"
	appHTTP "github.com/qssun/attendance-backend-go/internal/handler/http"
	"github.com/qssun/attendance-backend-go/internal/jobs"
	"github.com/qssun/attendance-backend-go/internal/pkg/cron"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
	"github.com/qssun/attendance-backend-go/internal/pkg/email"
	"github.com/qssun/attendance-backend-go/internal/pkg/fingerprint"
	"github.com/qssun/attendance-backend-go/internal/pkg/jwt"
	"github.com/qssun/attendance-backend-go/internal/pkg/oauth"
	"github.com/qssun/attendance-backend-go/internal/pkg/sse"
	"github.com/qssun/attendance-backend-go/internal/pkg/storage"
	"github.com/qssun/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/qssun/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/qssun/attendance-backend-go/internal/service/auth"
	chatService "github.com/qssun/attendance-backend-go/internal/service/chat"
	locationService "github.com/qssun/attendance-backend-go/internal/service/location"
	notificationService "github.com/qssun/attendance-backend-go/internal/service/notification"
	reportService "github.com/qssun/attendance-backend-go/internal/service/report"
	requestService "github.com/qssun/attendance-backend-go/internal/service/request"
	settingsService "github.com/qssun/attendance-backend-go/internal/service/settings"
	userService "github.com/qssun/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	chatRepo := postgresql.NewChatRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.GoogleEnabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	var fingerprintClient *fingerprint.Client
	if cfg.Fingerprint.Enabled {
		fingerprintClient = fingerprint.NewClient(
			cfg.Fingerprint.BaseURL,
			fingerprint.AuthMode(cfg.Fingerprint.AuthMode),
			cfg.Fingerprint.Username,
			cfg.Fingerprint.Password,
			cfg.Fingerprint.JWTToken,
		)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize report storage:", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()

	// Settings load their snapshot at startup; everything downstream
	// reads from it.
	settingsSvc, err := settingsService.NewSettingsService(context.Background(), settingsRepo)
	if err != nil {
		log.Fatal("Failed to load system settings:", err)
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notificationSvc.Stop()

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, googleService)
	userSvc := userService.NewUserService(userRepo)
	locationSvc := locationService.NewLocationService(locationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, locationSvc, settingsSvc, notificationSvc, userRepo)
	requestSvc := requestService.NewRequestService(requestRepo, userRepo, notificationSvc, settingsSvc)
	reportSvc := reportService.NewReportService(attendanceRepo, requestRepo, userRepo, settingsSvc)
	archiveSvc := reportService.NewArchiveService(fileStorage)
	chatSvc := chatService.NewChatService(chatRepo, userRepo, notificationSvc, hub)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc, googleService, cfg.App.FrontendURL),
		User:         appHTTP.NewUserHandler(userSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Location:     appHTTP.NewLocationHandler(locationSvc),
		Request:      appHTTP.NewRequestHandler(requestSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService, hub),
		Settings:     appHTTP.NewSettingsHandler(settingsSvc),
		Report:       appHTTP.NewReportHandler(reportSvc, archiveSvc),
		Chat:         appHTTP.NewChatHandler(chatSvc),
		Device:       appHTTP.NewDeviceHandler(attendanceSvc, fingerprintClient),
	}

	router := appHTTP.NewRouter(cfg, JWTService, handlers)

	scheduler := cron.NewScheduler()
	jobs.New(settingsSvc, notificationSvc, reportSvc, archiveSvc, emailService, attendanceSvc, userRepo, fingerprintClient, cfg.Fingerprint.PollInterval).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
