package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/config"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/stub"
	"github.com/Benshekniel/BookHiveFrontend-sub005/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.NewLogger("stubserver", cfg.LogLevel)
	defer log.Sync()

	log.Info("Stub marketplace server starting")

	// Connect to database
	database, err := stub.Connect(cfg.PGDSN, cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Run migrations
	if err := stub.RunMigrations(database); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := stub.NewRepository(database, log)

	// Optional demo data for local development
	if os.Getenv("SEED_DEMO") != "" {
		if err := seedDemo(repo, cfg.OwnerID); err != nil {
			log.Warn("Failed to seed demo data", zap.Error(err))
		} else {
			log.Info("Demo data seeded", zap.Int64("owner_id", cfg.OwnerID))
		}
	}

	srv := stub.NewServer(repo, log)

	go func() {
		log.Info("Serving stub API", zap.String("address", cfg.ListenAddr))
		if err := srv.Listen(cfg.ListenAddr); err != nil {
			log.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}

func seedDemo(repo *stub.Repository, ownerID int64) error {
	if ownerID == 0 {
		ownerID = 1
	}
	ctx := context.Background()

	records := []domain.InventoryRecord{
		{Kind: domain.KindRegular, Condition: domain.ConditionUsed, Category: "Fiction", Genres: []string{"Classic"}, StockCount: 4},
		{Kind: domain.KindRegular, Condition: domain.ConditionNew, Category: "Science", Genres: []string{"Popular Science"}, StockCount: 2},
		{Kind: domain.KindDonation, Condition: domain.ConditionFair, Category: "Fiction", StockCount: 6},
		{Kind: domain.KindDonation, Condition: domain.ConditionUsed, Category: "Children", StockCount: 3},
	}
	for _, rec := range records {
		if _, err := repo.CreateInventory(ctx, rec, ownerID); err != nil {
			return err
		}
	}

	requests := []domain.DonationRequest{
		{OrgName: "City Library", Category: "Fiction", Notes: "Annual reading drive", Quantity: 10, QuantityCurrent: 8, Status: domain.DonationApproved},
		{OrgName: "Sunrise Shelter", Category: "Children", Notes: "Picture books preferred", Quantity: 15, QuantityCurrent: 2, Status: domain.DonationShipped},
	}
	for _, req := range requests {
		if _, err := repo.CreateDonationRequest(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
