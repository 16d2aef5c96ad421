package main

import (
	"context"
	"log"
	"os"

	"pdfsummarizer/internal/api"
	"pdfsummarizer/internal/config"
	"pdfsummarizer/internal/extractor"
	"pdfsummarizer/internal/service/gateway"
	"pdfsummarizer/internal/service/summarizer"
	"pdfsummarizer/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("PDFSUMMARIZER_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store := session.NewStore()
	gatewayClient, err := gateway.NewClient(context.Background(), cfg, store)
	if err != nil {
		log.Fatalf("init gateway client: %v", err)
	}
	log.Printf("model gateway: provider=%s model=%s", gatewayClient.Provider(), gatewayClient.Model())

	summarizerService := summarizer.NewService(store, gatewayClient)
	handlers := api.NewHandler(extractor.New(), summarizerService, cfg)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8000"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
