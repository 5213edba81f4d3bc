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

	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	categoryIncompatibilitiesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/category_incompatibilities"
	comboEligibleCheckHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/combo_eligible_check"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_customer_bookings"
	multiServiceSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/multi_service_slots"
	requiresRemovalHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/requires_removal"
	updateBookingStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking_status"
	verifySlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/verify_slot"
	vipComboSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/vip_combo_slots"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	staffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/staff"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	multiServiceSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/multi_service_slots"
	verifySlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/verify_slot"
	vipComboSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/vip_combo_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
		staffRepository   *staffRepo.Repository
		configRepository  *configRepo.Repository
		txMgr             createBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Общие настройки перестановочного поиска
	searchBudget := time.Duration(cfg.Scheduling.SearchBudgetMs) * time.Millisecond
	staffFallback := cfg.Scheduling.StaffFallbackEnabled

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffRepository,
		configRepository,
		getAvailableSlotsUC.Settings{SearchBudget: searchBudget, StaffFallback: staffFallback},
		log,
	)

	multiServiceSlotsUseCase := multiServiceSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffRepository,
		configRepository,
		multiServiceSlotsUC.Settings{SearchBudget: searchBudget, StaffFallback: staffFallback},
		log,
	)

	vipComboSlotsUseCase := vipComboSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffRepository,
		configRepository,
		vipComboSlotsUC.Settings{SearchBudget: searchBudget, StaffFallback: staffFallback},
		log,
	)

	verifySlotUseCase := verifySlotUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffRepository,
		configRepository,
		verifySlotUC.Settings{SearchBudget: searchBudget, StaffFallback: staffFallback},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffRepository,
		configRepository,
		txMgr,
		createBookingUC.Settings{SearchBudget: searchBudget, StaffFallback: staffFallback},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	multiServiceSlots := multiServiceSlotsHandler.NewHandler(multiServiceSlotsUseCase, log)
	vipComboSlots := vipComboSlotsHandler.NewHandler(vipComboSlotsUseCase, log)
	verifySlot := verifySlotHandler.NewHandler(verifySlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	comboEligibleCheck := comboEligibleCheckHandler.NewHandler(catalogSvc, log)
	categoryIncompatibilities := categoryIncompatibilitiesHandler.NewHandler(catalogSvc, log)
	requiresRemoval := requiresRemovalHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск слотов для одной услуги
	api.HandleFunc("/bookings/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Последовательные слоты для нескольких услуг
	api.HandleFunc("/bookings/multi-service-slots", multiServiceSlots.Handle).Methods(http.MethodPost)

	// VIP-режим: две услуги одновременно у двух мастеров
	api.HandleFunc("/bookings/vip-combo-slots", vipComboSlots.Handle).Methods(http.MethodPost)

	// Проверка конкретного времени начала с перестановками
	api.HandleFunc("/bookings/verify-slot-with-permutations", verifySlot.Handle).Methods(http.MethodPost)

	// --- Каталог ---
	// Проверка набора услуг на комбо-апсейл
	api.HandleFunc("/services/combo-eligible/check", comboEligibleCheck.Handle).Methods(http.MethodGet)

	// Проверка совместимости категорий
	api.HandleFunc("/services/categories/incompatibilities", categoryIncompatibilities.Handle).Methods(http.MethodGet)

	// Проверка необходимости шага снятия
	api.HandleFunc("/services/categories/requires-removal", requiresRemoval.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание визита (одна запись на каждую услугу, общий groupId)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса записи
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
