package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/donations"
)

func donationsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donations",
		Short: "Browse donation requests and contribute stock",
	}
	cmd.AddCommand(
		donationsListCmd(flags),
		donationsStockCmd(flags),
		donationsContributeCmd(flags),
	)
	return cmd
}

func donationsListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open donation requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			requests, err := s.tracker.Requests(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORGANIZATION\tCATEGORY\tSTATUS\tFULFILLED\tCONTRIBUTABLE")
			for _, req := range requests {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%d\n",
					req.ID, req.OrgName, req.Category, req.Status,
					req.QuantityCurrent, req.Quantity, req.Contributable)
			}
			w.Flush()
			return nil
		},
	}
}

func donationsStockCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stock <donation-id>",
		Short: "List the owner's donation stock matching a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			request, err := findRequest(cmd, s, args[0])
			if err != nil {
				return err
			}

			stock, err := s.tracker.MatchingStock(cmd.Context(), *request)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tCONDITION\tSTOCK")
			for _, rec := range stock {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", rec.ID, rec.Category, rec.Condition, rec.StockCount)
			}
			w.Flush()

			fmt.Printf("\n%s needs %d more books in %s\n",
				request.OrgName, request.Contributable(), request.Category)
			return nil
		},
	}
}

func donationsContributeCmd(flags *rootFlags) *cobra.Command {
	var allocations []string

	cmd := &cobra.Command{
		Use:   "contribute <donation-id>",
		Short: "Contribute donation stock against a request",
		Long: `Contribute submits one batch of allocations against a donation
request. Each --allocate takes the form <inventory-id>=<count>; the whole
batch is applied by the marketplace atomically or rejected as a unit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			request, err := findRequest(cmd, s, args[0])
			if err != nil {
				return err
			}

			stock, err := s.tracker.MatchingStock(cmd.Context(), *request)
			if err != nil {
				return err
			}

			alloc := donations.NewAllocation(s.api, s.views, s.sess, s.log, *request, stock)
			for _, expr := range allocations {
				inventoryID, count, err := parseAllocation(expr)
				if err != nil {
					return err
				}
				if err := alloc.Set(inventoryID, count); err != nil {
					return fmt.Errorf("allocate %s: %w", expr, err)
				}
			}

			total := alloc.Total()
			if err := alloc.Submit(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("Contributed %d books to %s\n", total, request.OrgName)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&allocations, "allocate", nil, "Allocation as <inventory-id>=<count> (repeatable)")
	return cmd
}

// findRequest resolves a donation request by its id argument.
func findRequest(cmd *cobra.Command, s *stack, arg string) (*domain.DonationRequest, error) {
	donationID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("donation id must be numeric: %q", arg)
	}

	requests, err := s.tracker.Requests(cmd.Context())
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == donationID {
			return &requests[i].DonationRequest, nil
		}
	}
	return nil, fmt.Errorf("donation request %d not found", donationID)
}

func parseAllocation(expr string) (int64, int, error) {
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("allocation %q must be <inventory-id>=<count>", expr)
	}
	inventoryID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("allocation %q: inventory id must be numeric", expr)
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("allocation %q: count must be numeric", expr)
	}
	return inventoryID, count, nil
}
