package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/noura-assistant/server/internal/agent"
	"github.com/noura-assistant/server/internal/agent/analyzer"
	"github.com/noura-assistant/server/internal/agent/fsm"
	"github.com/noura-assistant/server/internal/agent/intent"
	"github.com/noura-assistant/server/internal/agent/model"
	"github.com/noura-assistant/server/internal/agent/repo"
	"github.com/noura-assistant/server/internal/agent/score"
	"github.com/noura-assistant/server/internal/agent/templates"
	"github.com/noura-assistant/server/internal/core"
	logx "github.com/noura-assistant/server/pkg/logger"
	pkgredis "github.com/noura-assistant/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Core
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Agent configs
	Session  model.SessionConfig
	History  model.HistoryConfig
	Analyzer model.AnalyzerConfig
	Bot      model.BotConfig
}

func main() {
	fmt.Println("Starting NOURA conversation driver...")
	ctx := context.Background()
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	httpClient := &http.Client{Timeout: envCfg.Analyzer.CallTimeout}
	classifier := intent.NewClassifier()
	render := templates.NewRenderer()
	bot := agent.New(agent.Config{
		Sessions:   repo.NewRedisSessionRepository(rdb, envCfg.Session),
		History:    repo.NewRedisHistoryRepository(rdb, envCfg.History),
		Classifier: classifier,
		Machine:    fsm.NewMachine(fsm.DefaultDefinition(), render, envCfg.Bot),
		Analyzer: analyzer.New(
			classifier,
			analyzer.NewOpenFoodFactsClient(envCfg.Analyzer.ProductBaseURL, httpClient),
			analyzer.NewFDAClient(envCfg.Analyzer.RecallBaseURL, httpClient),
			envCfg.Analyzer,
		),
		Engine:   score.NewEngine(),
		Renderer: render,
		Limiter:  analyzer.NewUserLimiter(envCfg.Analyzer.MaxAnalysesPerMinute),
	})

	testTurns := []struct {
		description string
		message     string
	}{
		{
			description: "Initial greeting",
			message:     "hola",
		},
		{
			description: "Country selection",
			message:     "Colombia",
		},
		{
			description: "Product analysis by name",
			message:     "nutella",
		},
		{
			description: "Expand into the detailed view",
			message:     "más",
		},
		{
			description: "Barcode analysis",
			message:     "3017620422003",
		},
	}

	userID := "console-user-1"

	for i, turn := range testTurns {
		fmt.Printf("\n🚀 Turn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: \"%s\"\n", turn.message)
		fmt.Println("Processing...")

		reply := bot.Handle(ctx, userID, turn.message)
		fmt.Printf("✅ NOURA: %s\n", reply)
		fmt.Println("─────────────────────────────────────────────")

		// add slight delay between turns for readability
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("🎉 Conversation driver finished!")
}
