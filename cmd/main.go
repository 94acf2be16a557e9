package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"restorer-go/internal/config"
	"restorer-go/internal/controller"
	"restorer-go/internal/handler"
	"restorer-go/internal/model/restorer"
	"restorer-go/internal/service"
	"restorer-go/pkg/mcp"
	"restorer-go/pkg/tamil"
)

func main() {
	var appConfigPath = flag.String("app", "app.yaml", "Path to app configuration file")
	var modelDir = flag.String("modeldir", "", "Directory to store model snapshots")
	flag.Parse()

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.DebugLevel)
	cfgZap.OutputPaths = []string{"stdout", "all.log"}
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	cfg, err := config.LoadConfig(*appConfigPath)
	if err != nil {
		logger.Warn("Failed to load configuration, using defaults", zap.Error(err))
		cfg = config.Default()
	}

	// Override model directory from command line if provided
	if *modelDir != "" {
		cfg.App.ModelDir = *modelDir
	}

	logger.Info("Configuration loaded successfully", zap.Any("config", cfg))

	persistence, err := service.NewPersistence(cfg.App.ModelDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize persistence", zap.Error(err))
	}

	// The working alphabet: Tamil uyir letters only begin words, mei letters
	// never do. Other scripts can be served by supplying different sets.
	alphabet := restorer.NewAlphabet(tamil.MappedUyir(), tamil.MappedMei())

	var restorerService *service.RestorerService
	if cfg.App.ModelName != "" && persistence.ModelExists(cfg.App.ModelName) {
		restorerService, err = persistence.Load(cfg.App.ModelName, logger)
		if err != nil {
			logger.Fatal("Failed to load model snapshot",
				zap.String("name", cfg.App.ModelName),
				zap.Error(err))
		}
		logger.Info("Model snapshot loaded", zap.String("name", cfg.App.ModelName))
	} else {
		restorerService = service.NewRestorerService(alphabet, logger)
		if err := restorerService.SetHyperparams(restorer.Hyperparams{
			L:      cfg.Model.L,
			Lambda: cfg.Model.Lambda,
		}); err != nil {
			logger.Fatal("Invalid default hyperparameters", zap.Error(err))
		}
		logger.Info("Started with an untrained model; POST /api/v1/train to train")
	}

	restoreController := controller.NewRestoreController(restorerService, persistence, cfg, logger)
	mcpServer := mcp.NewRestorerServer(restorerService, cfg, logger)

	router := handler.SetupRouter(restoreController, mcpServer, logger)

	logger.Info("Starting server", zap.Int("port", cfg.App.Port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), router); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
