package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/internal/listeners"
	"calibration-tracker/internal/repositories"
	"calibration-tracker/internal/services"
	"calibration-tracker/pkg/config"
	"calibration-tracker/pkg/eventbus"
	"calibration-tracker/pkg/filestorage"
	"calibration-tracker/pkg/middleware"
	"calibration-tracker/pkg/service"
	"calibration-tracker/pkg/websocket"
)

// InitRouter собирает репозитории, сервисы и контроллеры и вешает все маршруты под /api.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: начало создания маршрутов")

	now := services.Clock(time.Now)
	gatekeeper := authz.NewGatekeeper()
	authMW := middleware.NewAuthMiddleware(jwtSvc, gatekeeper, logger.Named("auth"))

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)

	// --- репозитории ---
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	calibrationRepo := repositories.NewCalibrationRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- сервисы ---
	wsNotificationService := services.NewWebSocketNotificationService(hub, logger)
	listeners.NewNotificationListener(wsNotificationService, logger).Register(bus)

	notificationService := services.NewNotificationService(notificationRepo, equipmentRepo, bus, logger.Named("notifications"), now)
	equipmentService := services.NewEquipmentService(equipmentRepo, notificationService, logger.Named("equipment"), now)
	calibrationService := services.NewCalibrationService(txManager, calibrationRepo, equipmentRepo, logger.Named("calibration"), now)
	dashboardService := services.NewDashboardService(equipmentRepo, now)
	reportService := services.NewReportService(calibrationRepo, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger.Named("auth"), &cfg.Auth)
	userService := services.NewUserService(userRepo, gatekeeper, logger.Named("users"))

	// --- контроллеры ---
	api := e.Group("/api")
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, controllers.NewAuthController(authService, logger.Named("auth")))
	runEquipmentRouter(secureGroup, controllers.NewEquipmentController(equipmentService, logger.Named("equipment")), authMW)
	runCalibrationRouter(secureGroup, controllers.NewCalibrationController(calibrationService, logger.Named("calibration")), authMW)
	runNotificationRouter(secureGroup, controllers.NewNotificationController(notificationService, logger.Named("notifications")), authMW)
	runDashboardRouter(secureGroup, controllers.NewDashboardController(dashboardService, logger), authMW)
	runReportRouter(secureGroup, controllers.NewReportController(reportService, logger), authMW)
	runUploadRouter(secureGroup, controllers.NewUploadController(fileStorage, cfg.Upload.URLPrefix, logger), authMW)
	runUserRouter(secureGroup, controllers.NewUserController(userService, logger.Named("users")), authMW)
	runWebSocketRouter(api, controllers.NewWebSocketController(hub, jwtSvc, cfg.Server.CORSOrigins, logger.Named("ws")))

	logger.Info("InitRouter: создание маршрутов завершено")
}
