package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	confirmAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/confirm_appointment"
	createBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_booking"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_appointment"
	getBookedSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_booked_slots"
	ingestAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/ingest_appointment"
	listServicesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_services"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	notificationsService "github.com/m04kA/SMC-BarberBooking/internal/service/notifications"
	createBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
	getBookedSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_booked_slots"
	ingestAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/ingest_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/shoptime"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

const (
	defaultConfigPath = "config.toml"
	startupTimeout    = 10 * time.Second
)

func main() {
	configPath := defaultConfigPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Часовой пояс салона
	normalizer, err := shoptime.Load(domain.ShopTimezone)
	if err != nil {
		log.Fatal("Failed to load shop timezone %s: %v", domain.ShopTimezone, err)
	}
	log.Info("Shop timezone: %s, business hours [%02d:00, %02d:00)",
		domain.ShopTimezone, domain.ShopHours.OpenHour, domain.ShopHours.CloseHour)

	// Инициализируем метрики (если включены)
	// Методы *metrics.Metrics безопасны на nil, поэтому коллектор передаётся как есть
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStartup()

	// Обёртка считает метрики запросов, без recorder просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)

	// Проверяем соединение
	if err := wrappedDB.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB, normalizer.Location())
	serviceRepository := serviceRepo.NewRepository(wrappedDB)

	// Инициализируем почтовый транспорт
	sender, err := mailer.New(mailer.Options{
		Transport: cfg.Notifier.Transport,
		From: mailer.Address{
			Name:  cfg.Notifier.FromName,
			Email: cfg.Notifier.FromEmail,
		},
		SMTPHost:       cfg.Notifier.SMTP.Host,
		SMTPPort:       cfg.Notifier.SMTP.Port,
		SMTPUsername:   cfg.Notifier.SMTP.Username,
		SMTPPassword:   cfg.Notifier.SMTP.Password,
		SendGridAPIKey: cfg.Notifier.SendGrid.APIKey,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}

	// Инициализируем сервисы
	notifier := notificationsService.NewService(
		sender,
		notificationsService.Options{
			AdminEmail: cfg.Notifier.AdminEmail,
			Timeout:    cfg.Notifier.SendTimeout(),
		},
		metricsCollector,
		log,
	)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, txMgr, log)

	// Заполняем каталог услуг при первом запуске
	seeded, err := catalogSvc.SeedDefaults(startupCtx)
	if err != nil {
		log.Fatal("Failed to seed service catalog: %v", err)
	}
	if seeded > 0 {
		log.Info("Service catalog seeded with %d default services", seeded)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		normalizer,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	ingestAppointmentUseCase := ingestAppointmentUC.NewUseCase(
		appointmentRepository,
		normalizer,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	getBookedSlotsUseCase := getBookedSlotsUC.NewUseCase(
		appointmentRepository,
		normalizer,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	ingestAppointment := ingestAppointmentHandler.NewHandler(ingestAppointmentUseCase, log)
	getBookedSlots := getBookedSlotsHandler.NewHandler(getBookedSlotsUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Лимитер для публичных POST маршрутов
	limited := func(h http.Handler) http.Handler { return h }
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		if err := rdb.Ping(startupCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s: %v (fail_open=%t)", cfg.RateLimit.RedisAddr, err, cfg.RateLimit.FailOpen)
		}

		limiter := middleware.NewRateLimiter(
			rdb,
			middleware.RateLimiterOptions{
				Limit:             cfg.RateLimit.Limit,
				Window:            cfg.RateLimit.WindowDuration(),
				Prefix:            cfg.RateLimit.Prefix,
				FailOpen:          cfg.RateLimit.FailOpen,
				TrustForwardedFor: cfg.RateLimit.TrustForwardedFor,
			},
			log,
		)
		limited = limiter.Middleware()
		log.Info("Rate limiting enabled: %d requests per %s", cfg.RateLimit.Limit, cfg.RateLimit.WindowDuration())
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Запись через форму
	r.Handle("/booking", limited(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// Занятые интервалы для календаря
	r.HandleFunc("/api/available-slots", getBookedSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	r.HandleFunc("/api/services", listServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// WEBHOOK (X-Webhook-Secret, если задан)
	// ============================================================

	webhook := r.PathPrefix("/webhook").Subrouter()
	webhook.Use(middleware.WebhookSecret(cfg.Security.WebhookSecret, log))
	webhook.Handle("/appointment", limited(http.HandlerFunc(ingestAppointment.Handle))).Methods(http.MethodPost)

	if cfg.Security.WebhookSecret == "" {
		log.Warn("Webhook secret is not configured, /webhook/appointment accepts unauthenticated requests")
	}

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// ============================================================

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminToken(cfg.Security.AdminToken, log))

	// Получение записи по ID
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подтверждение записи (pending -> confirmed)
	admin.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
