package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers/booking_transition"
	cancelBookingHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/get_booking"
	listClientTurnosHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/list_client_turnos"
	listProfessionalTurnosHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/list_professional_turnos"
	modifyBookingHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/modify_booking"
	previewPriceHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/preview_price"
	rateBookingHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/rate_booking"
	updateAvailabilityHandler "github.com/m04kA/servihogar-turnos/internal/api/handlers/update_availability"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/config"
	availabilityRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/availability"
	promotionRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/promotion"
	ratingRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/rating"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	catalogServiceClient "github.com/m04kA/servihogar-turnos/internal/integrations/catalogservice"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	availabilityService "github.com/m04kA/servihogar-turnos/internal/service/availability"
	bookingsService "github.com/m04kA/servihogar-turnos/internal/service/bookings"
	pricingService "github.com/m04kA/servihogar-turnos/internal/service/pricing"
	promotionsService "github.com/m04kA/servihogar-turnos/internal/service/promotions"
	createBookingUC "github.com/m04kA/servihogar-turnos/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/servihogar-turnos/internal/usecase/get_available_slots"
	modifyBookingUC "github.com/m04kA/servihogar-turnos/internal/usecase/modify_booking"
	previewPriceUC "github.com/m04kA/servihogar-turnos/internal/usecase/preview_price"
	rateBookingUC "github.com/m04kA/servihogar-turnos/internal/usecase/rate_booking"
	"github.com/m04kA/servihogar-turnos/pkg/dbmetrics"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
	"github.com/m04kA/servihogar-turnos/pkg/metrics"
	"github.com/m04kA/servihogar-turnos/pkg/txmanager"
)

// publisher события бронирований: RabbitMQ или заглушка
type publisher interface {
	events.Sink
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting servihogar-turnos...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка БД: без коллектора метрик просто проксирует вызовы
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	turnoRepository := turnoRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)
	ratingRepository := ratingRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var sink publisher = events.Noop{}
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		sink = p
		log.Info("Event publishing enabled (exchange=%s)", cfg.Events.Exchange)
	}
	defer sink.Close()
	emitter := events.NewEmitter(sink, log)

	// Инициализируем сервисы
	promotionCatalog := promotionsService.NewService(
		promotionRepository,
		turnoRepository,
		cfg.Booking.MaxFixedDiscountValue(),
		log,
	)
	pricingEngine := pricingService.NewService(promotionCatalog, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(turnoRepository, emitter, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		turnoRepository,
		availabilityRepository,
		catalogClient,
		pricingEngine,
		txMgr,
		emitter,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		turnoRepository,
		availabilityRepository,
		catalogClient,
		getAvailableSlotsUC.Settings{
			Location:           location,
			DefaultHorizonDays: cfg.Booking.DefaultHorizonDays,
			MaxHorizonDays:     cfg.Booking.MaxHorizonDays,
		},
		log,
	)

	modifyBookingUseCase := modifyBookingUC.NewUseCase(
		turnoRepository,
		availabilityRepository,
		txMgr,
		emitter,
		location,
		log,
	)

	rateBookingUseCase := rateBookingUC.NewUseCase(
		turnoRepository,
		ratingRepository,
		txMgr,
		emitter,
		log,
	)

	previewPriceUseCase := previewPriceUC.NewUseCase(catalogClient, pricingEngine, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	modifyBooking := modifyBookingHandler.NewHandler(modifyBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := booking_transition.NewHandler(bookingSvc, booking_transition.ActionConfirm, log)
	rejectBooking := booking_transition.NewHandler(bookingSvc, booking_transition.ActionReject, log)
	startBooking := booking_transition.NewHandler(bookingSvc, booking_transition.ActionStart, log)
	completeBooking := booking_transition.NewHandler(bookingSvc, booking_transition.ActionComplete, log)
	rateBooking := rateBookingHandler.NewHandler(rateBookingUseCase, log)
	listClientTurnos := listClientTurnosHandler.NewHandler(bookingSvc, log)
	listProfessionalTurnos := listProfessionalTurnosHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	previewPrice := previewPriceHandler.NewHandler(previewPriceUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, log).Middleware)

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты профессионала для услуги
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание профессионала
	api.HandleFunc("/professionals/{professionalId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Предварительный расчёт цены
	api.HandleFunc("/services/{serviceId}/price-preview",
		previewPrice.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/turnos", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/turnos/{turnoId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/turnos/{turnoId}", modifyBooking.Handle).Methods(http.MethodPatch)

	// --- Переходы жизненного цикла ---
	protected.HandleFunc("/turnos/{turnoId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turnos/{turnoId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turnos/{turnoId}/start", startBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turnos/{turnoId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turnos/{turnoId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Оценка выполненного бронирования
	protected.HandleFunc("/turnos/{turnoId}/rating", rateBooking.Handle).Methods(http.MethodPost)

	// --- Списки ---
	protected.HandleFunc("/clients/{clientId}/turnos", listClientTurnos.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/turnos", listProfessionalTurnos.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	protected.HandleFunc("/professionals/{professionalId}/availability",
		updateAvailability.Handle).Methods(http.MethodPut)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	log.Info("Server stopped gracefully")
}
