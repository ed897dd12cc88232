package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/auth"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/config"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/database"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title Pizzeria Orders API
// @version 1.0
// @description Order intake and delivery queue of a pizzeria
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()
	applyLogLevel(configuration.LogLevel)

	// Initialize database connection
	db := setupDatabase(configuration)
	sqlDB, err := db.DB()
	checkPanicErr(err)
	defer sqlDB.Close()

	if configuration.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := server.NewRouter(db, server.Options{
		JWTSecret:     configuration.JWTSecret,
		SessionSecret: configuration.SessionSecret,
		Logger:        log.StandardLogger(),
	})
	checkPanicErr(err)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%v:%d", configuration.Host, configuration.Port),
		Handler:           server.WithCORS(router, configuration.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	level := config.LevelForEnvironment(config.GetEnvWithDefault("APP_ENV", "development"))
	log.SetLevel(level)
	database.SetLogLevel(level)
}

// applyLogLevel lets LOG_LEVEL override the environment default when it is set explicitly
func applyLogLevel(level string) {
	if os.Getenv("LOG_LEVEL") == "" {
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Ignoring invalid LOG_LEVEL %q", level)
		return
	}
	log.SetLevel(parsed)
	database.SetLogLevel(parsed)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects, migrates the schema and seeds the catalog when it is empty
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database())
	checkPanicErr(err)

	checkPanicErr(database.Migrate(db))

	if conf.SeedCatalog {
		checkPanicErr(database.SeedCatalog(db))
	} else {
		log.Info("Catalog seeding disabled")
	}

	purged, err := auth.NewGormTokenStore(db).PurgeExpired(context.Background(), time.Now())
	if err != nil {
		log.WithError(err).Warn("Failed to purge expired access tokens")
	} else if purged > 0 {
		log.Infof("Purged %d expired access tokens", purged)
	}
	return db
}
