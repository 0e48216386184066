package app

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/contract"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/contractimport"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/filestore"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/geocoding"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/identity"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/messaging/kafka"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/middleware"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/notification"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/counter"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/textextract"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	contractRepo := contract.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)

	// --- Collaborators ---
	geocoder := geocoding.NewResolver(geocoding.NewClient(
		os.Getenv("NOMINATIM_URL"),
		os.Getenv("NOMINATIM_USER_AGENT"),
	))
	provisioner := identity.NewHTTPProvisioner(os.Getenv("IDENTITY_SERVICE_URL"))

	mailer := notification.NewNoopMailer()
	publisher := contractimport.NewNoopEventPublisher()
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer := kafka.NewWriter(broker)
		mailer = notification.NewKafkaMailer(writer)
		publisher = contractimport.NewKafkaEventPublisher(writer)
	} else {
		logger.Warn("KAFKA_BROKER not set, notifications and sync events disabled")
	}

	var files filestore.Store
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		store, err := filestore.NewMinioStore(filestore.Config{
			Endpoint:  endpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    os.Getenv("MINIO_BUCKET"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := filestore.EnsureBucket(ctx, store); err != nil {
			return err
		}
		files = store
	} else {
		logger.Warn("MINIO_ENDPOINT not set, original documents will not be archived")
	}

	// --- Services ---
	importService := contractimport.NewService(
		gormDB,
		contractRepo,
		counterRepo,
		contract.NewPeriodManager(contractRepo),
		textextract.PlainText{},
		geocoder,
		provisioner,
		mailer,
		publisher,
		files,
	)

	// --- Handlers ---
	importHandler := contractimport.NewHandler(importService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(5, 10))
	{
		contractimport.RegisterRoutes(api, importHandler, rdb, logger)
	}

	return nil
}
