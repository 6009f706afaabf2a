// File: farewise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farewise/config"
	"farewise/cron"
	"farewise/database"
	conversationRepo "farewise/database/repository/conversation"
	"farewise/handlers"
	"farewise/middleware"
	"farewise/routes"
	"farewise/services/ai"
	"farewise/services/dialogue"
	"farewise/services/extract"
	"farewise/services/search"
	"farewise/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	transcriptRepo := conversationRepo.NewMongoTranscriptRepo()

	// model-backed helpers; extraction degrades to rules only when no key is set.
	var counter extract.PassengerCounter = extract.RuleCounter{}
	var phraser ai.ReplyPhraser = ai.PlainPhraser{}
	if config.AppConfig.GeminiAPIKey != "" {
		gemini := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
		counter = extract.FallbackCounter{Counters: []extract.PassengerCounter{
			extract.RuleCounter{},
			&ai.GeminiPassengerCounter{Gen: gemini},
		}}
		phraser = &ai.GeminiPhraser{Gen: gemini}
	}

	// services.
	extractor := extract.NewExtractor(counter)

	gateway := search.NewSkyGateway(&config.AppConfig)
	directory := search.NewCachedDirectory(gateway, config.DiscoveryTTL())
	orchestrator := &search.DefaultSearchOrchestrator{
		Directory:       directory,
		Gateway:         gateway,
		MaxConcurrency:  config.AppConfig.SearchMaxConcurrency,
		ProviderTimeout: config.ProviderTimeout(),
	}
	searchService := &search.DefaultService{Orchestrator: orchestrator}

	sessionStore := dialogue.NewRedisSessionStore(utils.GetSessionCacheClient(), config.SessionTTL())
	conversationService := dialogue.NewConversationService(
		sessionStore,
		extractor,
		searchService,
		phraser,
		transcriptRepo,
	)

	chatHandler := handlers.NewChatHandler(conversationService, transcriptRepo)
	searchHandler := handlers.NewSearchHandler(searchService)

	// Register routes.
	routes.RegisterRoutes(router, chatHandler, searchHandler)

	// Background maintenance.
	cronCtx, cronCancel := context.WithCancel(context.Background())
	defer cronCancel()
	go cron.StartDirectoryPruneCron(cronCtx, directory, config.DiscoveryTTL())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	cronCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
