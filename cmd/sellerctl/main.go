// Package main provides the sellerctl binary, the command line front end
// for a BookHive store owner: inventory views, listing management and
// donation contributions.
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/config"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/donations"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/metrics"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/store"
	"github.com/Benshekniel/BookHiveFrontend-sub005/pkg/logger"
)

const (
	Version = "0.1.0"
	appName = "sellerctl"
)

// rootFlags are the persistent flags shared by every subcommand. A zero
// value means "use the configuration file or environment".
type rootFlags struct {
	ownerID  int64
	apiURL   string
	logLevel string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "BookHive seller command line",
		Long: `Sellerctl manages one store owner's side of the BookHive marketplace:
the bulk inventory view, promotion of inventory records into listings,
listing lifecycle changes and contributions against donation requests.

All mutations happen on the marketplace API; sellerctl never adjusts
stock counts or fulfillment totals locally.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Int64Var(&flags.ownerID, "owner", 0, "Store owner id (defaults to OWNER_ID)")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api", "", "Marketplace API base URL (defaults to API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		inventoryCmd(flags),
		listingsCmd(flags),
		donationsCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

// stack wires the whole seller side for one owner session.
type stack struct {
	cfg       *config.Config
	sess      session.Session
	api       *client.Client
	views     *cache.ViewCache
	inventory *store.InventoryStore
	promoter  *store.Promoter
	listings  *store.ListingService
	tracker   *donations.Tracker
	log       *zap.Logger
}

// newStack loads configuration, applies flag overrides and builds the
// client, cache and services for one invocation.
func newStack(flags *rootFlags) (*stack, error) {
	cfg := config.Load()
	if flags.ownerID != 0 {
		cfg.OwnerID = flags.ownerID
	}
	if flags.apiURL != "" {
		cfg.APIBaseURL = flags.apiURL
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if cfg.OwnerID == 0 {
		return nil, fmt.Errorf("owner id is required: pass --owner or set OWNER_ID")
	}

	log := logger.NewCLILogger(cfg.LogLevel)
	m := metrics.New(prometheus.NewRegistry())

	api := client.New(client.Config{
		BaseURL:     cfg.APIBaseURL,
		ReadRetries: cfg.ReadRetries,
		RetryDelay:  cfg.RetryDelay,
	}, m, log)
	views := cache.New(cfg.CacheTTL, m, log)
	sess := session.New(cfg.OwnerID, fmt.Sprintf("owner-%d", cfg.OwnerID))

	return &stack{
		cfg:       cfg,
		sess:      sess,
		api:       api,
		views:     views,
		inventory: store.NewInventoryStore(api, views, sess, log),
		promoter:  store.NewPromoter(api, views, sess, log),
		listings:  store.NewListingService(api, views, sess, log),
		tracker:   donations.NewTracker(api, views, sess, log),
		log:       log,
	}, nil
}
