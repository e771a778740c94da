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

	cancelAppointmentHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/get_available_slots"
	getPatientAppointmentsHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/get_patient_appointments"
	getProfessionalAppointmentsHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/get_professional_appointments"
	getScheduleHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/get_schedule"
	getSpecialScheduleHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/get_special_schedule"
	updateScheduleHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/update_schedule"
	updateSpecialScheduleHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/update_special_schedule"
	validateSlotHandler "github.com/avdmit/MDC-AvailabilityService/internal/api/handlers/validate_slot"
	"github.com/avdmit/MDC-AvailabilityService/internal/api/middleware"
	"github.com/avdmit/MDC-AvailabilityService/internal/config"
	appointmentRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/appointment"
	catalogRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/catalog"
	scheduleRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	appointmentsService "github.com/avdmit/MDC-AvailabilityService/internal/service/appointments"
	scheduleService "github.com/avdmit/MDC-AvailabilityService/internal/service/schedule"
	createAppointmentUC "github.com/avdmit/MDC-AvailabilityService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/avdmit/MDC-AvailabilityService/internal/usecase/get_available_slots"
	validateSlotUC "github.com/avdmit/MDC-AvailabilityService/internal/usecase/validate_slot"
	"github.com/avdmit/MDC-AvailabilityService/pkg/dbmetrics"
	"github.com/avdmit/MDC-AvailabilityService/pkg/logger"
	"github.com/avdmit/MDC-AvailabilityService/pkg/metrics"
	"github.com/avdmit/MDC-AvailabilityService/pkg/simpletxmanager"
	"github.com/avdmit/MDC-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting MDC-AvailabilityService...")
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

	// Инициализируем клиент DirectoryService
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (DirectoryService=%s timeout=%ds)",
		cfg.Directory.URL, cfg.Directory.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		catalogRepository     *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		catalogRepository,
		directory,
		log,
	)

	validateSlotUseCase := validateSlotUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		catalogRepository,
		directory,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		validateSlotUseCase,
		catalogRepository,
		directory,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateSlot := validateSlotHandler.NewHandler(validateSlotUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProfessionalAppointments := getProfessionalAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	getSpecialSchedule := getSpecialScheduleHandler.NewHandler(scheduleSvc, log)
	updateSpecialSchedule := updateSpecialScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Прокидываем X-Request-ID во все запросы
	r.Use(middleware.RequestID)

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

	// Доступные слоты для записи к специалисту
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка конкретного слота
	api.HandleFunc("/slots/validate", validateSlot.Handle).Methods(http.MethodPost)

	// Недельное расписание специалиста
	api.HandleFunc("/professionals/{professionalId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Особое расписание специалиста на дату
	api.HandleFunc("/professionals/{professionalId}/special-schedule",
		getSpecialSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей пациента
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет специалиста ---
	// Записи в расписании специалиста
	protected.HandleFunc("/professionals/{professionalId}/appointments",
		getProfessionalAppointments.Handle).Methods(http.MethodGet)

	// Замена недельного расписания
	protected.HandleFunc("/professionals/{professionalId}/schedule",
		updateSchedule.Handle).Methods(http.MethodPut)

	// Замена особого расписания на дату
	protected.HandleFunc("/professionals/{professionalId}/special-schedule",
		updateSpecialSchedule.Handle).Methods(http.MethodPut)

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
