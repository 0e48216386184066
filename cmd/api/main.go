package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/app"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/bootstrap"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	r := gin.Default()

	// build dependency + routes
	if err := app.BuildApp(r); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:        port,
			ReadTimeout: 30 * time.Second,
			// Imports wait out the geocoding provider pause; keep the write
			// window generous.
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
