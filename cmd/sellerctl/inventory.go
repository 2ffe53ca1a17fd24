package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

func inventoryCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inspect the owner's bulk stock",
	}
	cmd.AddCommand(inventoryListCmd(flags))
	return cmd
}

func inventoryListCmd(flags *rootFlags) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bulk inventory records",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStack(flags)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			records, err := s.inventory.Get(cmd.Context(), domain.InventoryKind(strings.ToUpper(kind)))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tCATEGORY\tCONDITION\tGENRES\tSTOCK")
			total := int64(0)
			for _, rec := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
					rec.ID, rec.Kind, rec.Category, rec.Condition,
					strings.Join(rec.Genres, ","), rec.StockCount)
				total += int64(rec.StockCount)
			}
			w.Flush()

			fmt.Printf("\n%d records, %s books in stock\n", len(records), humanize.Comma(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.KindRegular), "Inventory kind (REGULAR or DONATION)")
	return cmd
}
