package main

import (
	"database/sql"
	"expvar"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/edoabasi/libcatalog/config"
	_ "github.com/edoabasi/libcatalog/docs"
	"github.com/edoabasi/libcatalog/handler"
	"github.com/edoabasi/libcatalog/internal/jsonlog"
	"github.com/edoabasi/libcatalog/repository"
	"github.com/edoabasi/libcatalog/repository/postgres"
	"github.com/edoabasi/libcatalog/service"
)

const version = "1.0.0"

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title  Library Catalog API
// @version 1.0.0
// @description RPC-style CRUD and lending operations over a catalog of book records.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration from an optional YAML file plus environment
	// variables
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	publishMetrics(db)

	// Application layers
	repo := repository.New(db)
	service := service.New(logger, repo)
	handler := handler.New(cfg, logger, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// publishMetrics registers process-level expvar variables alongside the
// request metrics collected by the handler middleware.
func publishMetrics(db *sql.DB) {
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))
}
