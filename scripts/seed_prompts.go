package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/internal/adapter/repository"
	"github.com/callops-team/call-assistant/internal/domain/entities"
	"github.com/callops-team/call-assistant/internal/infrastructure/database"
	"github.com/callops-team/call-assistant/pkg/config"
)

func main() {
	log.Println("🚀 Seeding conversation prompts...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db, logger)

	promptRepo := repository.NewPromptRepository(db)

	seeds := []struct {
		Name         string
		Content      string
		Instructions string
	}{
		{
			Name:         "dispatch-check-call",
			Content:      "You are a dispatch assistant checking in with a driver about an active load. Confirm the driver's current location, the load status and the expected delivery time.",
			Instructions: "support: stay factual, confirm details back to the driver, escalate delays",
		},
		{
			Name:         "delivery-confirmation",
			Content:      "You are confirming a completed delivery. Verify the proof of delivery, note any exceptions and thank the driver.",
			Instructions: "support: keep the call short, record exceptions verbatim",
		},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		prompt := entities.NewConversationPrompt(seed.Name, seed.Content, seed.Instructions)
		if err := promptRepo.Create(ctx, prompt); err != nil {
			log.Fatalf("Failed to seed prompt %q: %v", seed.Name, err)
		}
		log.Printf("✅ Seeded prompt %q (%s)", seed.Name, prompt.ID)
	}

	log.Println("✅ Done")
}
