package main

import (
	"log"
	"strings"

	"chickenmaster-api/config"
	"chickenmaster-api/controllers"
	"chickenmaster-api/database"
	"chickenmaster-api/kafka"
	"chickenmaster-api/logger"
	"chickenmaster-api/middleware"
	"chickenmaster-api/models"
	"chickenmaster-api/repository"
	"chickenmaster-api/routes"
	"chickenmaster-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zl.Sync()

	orderRepo, paymentRepo, err := buildRepositories(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialize store", zap.Error(err))
	}
	adminRepo, err := repository.NewFileAdminRepository(cfg.DataDir, zl)
	if err != nil {
		zl.Fatal("Failed to initialize admin user store", zap.Error(err))
	}

	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		p := kafka.NewOrderEventProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic, zl)
		defer p.Close()
		producer = p
	} else {
		zl.Info("KAFKA_BROKERS not set, event publishing disabled")
	}

	orderSvc := services.NewOrderService(orderRepo, producer, zl)
	paymentSvc := services.NewPaymentService(paymentRepo, producer, zl)
	gatewaySvc := services.NewPaydunyaService(orderRepo, paymentRepo, producer, zl)
	authSvc := services.NewAuthService(adminRepo, cfg.JWTSecret, zl)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))

	routes.Register(r,
		controllers.NewOrderController(orderSvc),
		controllers.NewPaymentController(paymentSvc),
		controllers.NewPaydunyaController(gatewaySvc),
		controllers.NewAdminController(authSvc),
	)

	zl.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("store_backend", cfg.StoreBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("Server failed", zap.Error(err))
	}
}

func buildRepositories(cfg *config.Config, zl *zap.Logger) (repository.OrderRepository, repository.PaymentRepository, error) {
	if cfg.StoreBackend == config.BackendPostgres {
		db, err := database.Connect(database.PostgresConfig{
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			DB:       cfg.PostgresDB,
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			SSLMode:  cfg.PostgresSSLMode,
			TimeZone: cfg.PostgresTimeZone,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&models.Order{}, &models.Payment{}); err != nil {
			return nil, nil, err
		}
		zl.Info("Connected to Postgres")
		return repository.NewGormOrderRepository(db), repository.NewGormPaymentRepository(db), nil
	}

	orderRepo, err := repository.NewFileOrderRepository(cfg.DataDir, zl)
	if err != nil {
		return nil, nil, err
	}
	paymentRepo, err := repository.NewFilePaymentRepository(cfg.DataDir, zl)
	if err != nil {
		return nil, nil, err
	}
	return orderRepo, paymentRepo, nil
}
