package main

import (
	"context"
	"fmt"
	"log"

	"github.com/justsurfingit/voice-job-matcher/internal/app"
	"github.com/justsurfingit/voice-job-matcher/internal/config"
	"github.com/justsurfingit/voice-job-matcher/internal/database"
	"github.com/justsurfingit/voice-job-matcher/internal/handlers"
	"github.com/justsurfingit/voice-job-matcher/internal/metrics"
	"github.com/justsurfingit/voice-job-matcher/internal/services"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	// 2. Optional audit database
	var db *gorm.DB
	if cfg.Database.DSN != "" {
		db, err = database.Connect(cfg.Database.DSN)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("⚠️  DATABASE_URL not set, pipeline runs will not be recorded.")
	}
	runService := services.NewRunService(db)

	// 3. Initialize Core Services
	m := metrics.NewMetrics()
	svc, err := app.NewServices(context.Background(), cfg, runService, m)
	if err != nil {
		log.Fatal("Failed to initialize services: ", err)
	}

	// 4. Initialize Handlers
	router := &handlers.Router{
		Transcribe: handlers.NewTranscribeHandler(svc.Pipeline, cfg.Server.MaxUploadMB<<20),
		Jobs:       handlers.NewJobHandler(svc.Searcher),
		Status:     handlers.NewStatusHandler(runService, cfg.MockMode, cfg.Server.APIURL),
		Metrics:    m,
	}

	// 5. Setup Router
	r := router.Engine()
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
