package main

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"megaDeOuro/handlers"
	"megaDeOuro/models"
	"megaDeOuro/scheduler"
	"megaDeOuro/services"
	"megaDeOuro/services/extService"
	"megaDeOuro/services/prizeService"
)

var db *gorm.DB

func init() {
	logger.Init("megaDeOuro", true, false, io.Discard)

	err := godotenv.Load()
	if err != nil {
		logger.Warningf("no .env file found, relying on the environment")
	}

	connString := os.Getenv("MYSQL_URL")
	if connString == "" {
		logger.Fatalf("MYSQL_URL not set in environment variables")
	}

	db, err = gorm.Open(mysql.Open(connString+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.Pool{}, &models.Entry{}, &models.DrawResult{}, &models.ErrorLog{}, &models.Migration{})
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
}

func main() {
	schedule, err := prizeService.ByName(os.Getenv("PRIZE_SCHEDULE"))
	if err != nil {
		logger.Fatalf("PRIZE_SCHEDULE: %v", err)
	}
	if err := schedule.Validate(); err != nil {
		logger.Fatalf("prize schedule: %v", err)
	}

	pixKey := os.Getenv("PIX_CHAVE")
	if pixKey == "" {
		logger.Warningf("PIX_CHAVE not set, payment codes will carry an empty key")
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		logger.Warningf("ADMIN_TOKEN not set, admin routes are disabled")
	}

	if err := services.RunPhoneNormalizationMigration(db); err != nil {
		logger.Fatalf("Error running data migration: %v", err)
	}

	results := extService.NewClient(os.Getenv("LOTERIAS_API_URL"))
	cronService := scheduler.SetupCron(db, results)
	defer cronService.Stop()

	router := gin.Default()
	httpHandler := handlers.NewHTTPHandler(db, results, schedule, pixKey, adminToken)
	httpHandler.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Infof("Mega de Ouro API listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
