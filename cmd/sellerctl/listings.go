package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/store"
)

func listingsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Manage the owner's listings",
	}
	cmd.AddCommand(
		listingsListCmd(flags),
		listingsPromoteCmd(flags),
		listingsStatusCmd(flags),
		listingsReturnCmd(flags),
	)
	return cmd
}

func listingsListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the owner's listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			listings, err := s.listings.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tPRICE\tCOUNT")
			for _, l := range listings {
				price := "-"
				if l.Pricing != nil && l.Pricing.SellPrice != nil {
					price = humanize.CommafWithDigits(*l.Pricing.SellPrice, 2)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
					l.ID, l.Title, l.ListingType, l.Status, price, l.BookCount)
			}
			w.Flush()

			fmt.Printf("\n%d listings\n", len(listings))
			return nil
		},
	}
}

func listingsPromoteCmd(flags *rootFlags) *cobra.Command {
	var (
		inventoryID   int64
		title         string
		authors       []string
		genres        []string
		description   string
		isbn          string
		condition     string
		listingType   string
		bookCount     int
		sellPrice     float64
		lendPrice     float64
		deposit       float64
		lendingPeriod int
		lateFee       float64
		minTrustScore int
		coverPath     string
		imagePaths    []string
		publish       bool
	)

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Promote one inventory record into one listing",
		Long: `Promote turns one bulk inventory record into an individually
addressable listing. The record's stock count is decremented by the
marketplace, not locally; run "inventory list" afterwards to see it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			listing := domain.BookListing{
				Title:       title,
				Authors:     authors,
				Genres:      genres,
				Description: description,
				ISBN:        isbn,
				Condition:   domain.Condition(strings.ToUpper(condition)),
				ListingType: domain.ListingType(strings.ToUpper(listingType)),
				BookCount:   bookCount,
			}

			pricing := &domain.Pricing{}
			if cmd.Flags().Changed("sell-price") {
				pricing.SellPrice = &sellPrice
			}
			if cmd.Flags().Changed("lend-price") {
				pricing.LendPrice = &lendPrice
			}
			if cmd.Flags().Changed("deposit") {
				pricing.DepositAmount = &deposit
			}
			if pricing.SellPrice != nil || pricing.LendPrice != nil || pricing.DepositAmount != nil {
				listing.Pricing = pricing
			}
			if cmd.Flags().Changed("lending-period") {
				listing.LendingPeriod = &lendingPeriod
			}
			if cmd.Flags().Changed("late-fee") {
				listing.LateFee = &lateFee
			}
			if cmd.Flags().Changed("min-trust-score") {
				listing.MinTrustScore = &minTrustScore
			}

			cover, err := loadImage(coverPath)
			if err != nil {
				return err
			}
			gallery := make([]client.ImageFile, 0, len(imagePaths))
			for _, path := range imagePaths {
				img, err := loadImage(path)
				if err != nil {
					return err
				}
				gallery = append(gallery, *img)
			}

			created, err := s.promoter.Promote(cmd.Context(), store.PromoteDraft{
				InventoryID: inventoryID,
				Listing:     listing,
				Cover:       cover,
				Gallery:     gallery,
				Publish:     publish,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Listing %d created (%s)\n", created.ID, created.Status)
			return nil
		},
	}

	cmd.Flags().Int64Var(&inventoryID, "inventory-id", 0, "Origin inventory record id")
	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringArrayVar(&authors, "author", nil, "Author (repeatable)")
	cmd.Flags().StringArrayVar(&genres, "genre", nil, "Genre (repeatable)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&condition, "condition", string(domain.ConditionUsed), "Condition (NEW, USED, FAIR)")
	cmd.Flags().StringVar(&listingType, "type", string(domain.TypeSellOnly), "Listing type (SELL_ONLY, LEND_ONLY, SELL_AND_LEND, EXCHANGE, DONATE)")
	cmd.Flags().IntVar(&bookCount, "book-count", 1, "Copies consumed from the inventory record")
	cmd.Flags().Float64Var(&sellPrice, "sell-price", 0, "Sell price (sell types only)")
	cmd.Flags().Float64Var(&lendPrice, "lend-price", 0, "Lend price (lend types only)")
	cmd.Flags().Float64Var(&deposit, "deposit", 0, "Deposit amount (lend types only)")
	cmd.Flags().IntVar(&lendingPeriod, "lending-period", 0, "Lending period in days (lend types only)")
	cmd.Flags().Float64Var(&lateFee, "late-fee", 0, "Late fee per day (lend types only)")
	cmd.Flags().IntVar(&minTrustScore, "min-trust-score", 0, "Minimum borrower trust score (lend types only)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Cover image file")
	cmd.Flags().StringArrayVar(&imagePaths, "image", nil, "Gallery image file (repeatable, at most 3)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish immediately instead of holding in INVENTORY")

	_ = cmd.MarkFlagRequired("inventory-id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func listingsStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status <listing-id> <new-status>",
		Short: "Move a listing to a new lifecycle state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listingID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("listing id must be numeric: %q", args[0])
			}
			to := domain.ListingStatus(strings.ToUpper(args[1]))

			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			listing, err := findListing(cmd, s, listingID)
			if err != nil {
				return err
			}

			updated, err := s.listings.ChangeStatus(cmd.Context(), *listing, to)
			if err != nil {
				return err
			}

			fmt.Printf("Listing %d: %s -> %s\n", updated.ID, listing.Status, updated.Status)
			return nil
		},
	}
}

func listingsReturnCmd(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "return <listing-id>",
		Short: "Return a listing to non-public inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listingID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("listing id must be numeric: %q", args[0])
			}

			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			err = s.listings.ReturnToInventory(cmd.Context(), listingID, yes)
			if errors.Is(err, store.ErrConfirmationRequired) {
				return fmt.Errorf("returning listing %d removes it from public view; rerun with --yes to confirm", listingID)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Listing %d returned to inventory\n", listingID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the removal")
	return cmd
}

// findListing resolves one of the owner's listings by id.
func findListing(cmd *cobra.Command, s *stack, listingID int64) (*domain.BookListing, error) {
	listings, err := s.listings.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if listings[i].ID == listingID {
			return &listings[i], nil
		}
	}
	return nil, fmt.Errorf("listing %d not found", listingID)
}

// loadImage reads an image file into an upload part, inferring the content
// type from the file extension.
func loadImage(path string) (*client.ImageFile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return &client.ImageFile{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}
