package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avstrong/zenith/internal/catalog"
	"github.com/avstrong/zenith/internal/confirmation"
	"github.com/avstrong/zenith/internal/quote"
)

func servicesCmd(st *state) *cobra.Command {
	var filter catalog.Filter

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List cleaning services",
		RunE: func(cmd *cobra.Command, args []string) error {
			services := st.app.Catalog.Find(filter)

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), services)
			}

			if len(services) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found.")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tCATEGORY\tFROM\tPER ROOM\tDURATION")
			for _, s := range services {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.Name, s.Category, confirmation.Money(s.BasePrice), confirmation.Money(s.PerRoomPrice), s.Duration)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Search names and descriptions")
	cmd.Flags().StringVar(&filter.Category, "category", "", "regular, deep or specialized")
	cmd.Flags().StringVar(&filter.Location, "location", "", "Served location")
	cmd.Flags().StringVar(&filter.PriceRange, "price", "", "under100, 100to150 or over150")
	return cmd
}

func quoteCmd(st *state) *cobra.Command {
	var req quote.Request

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Estimate the price of a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := st.app.Quotes.Calculate(req)

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), b)
			}

			if b.IsZero() {
				names := make([]string, 0)
				for _, f := range st.app.Catalog.Frequencies() {
					names = append(names, f.ID)
				}
				return fmt.Errorf("select a known service, rooms and a frequency (%s)", strings.Join(names, ", "))
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
			fmt.Fprintf(writer, "Base price\t%s\n", confirmation.Money(b.BasePrice))
			fmt.Fprintf(writer, "Additional rooms\t%s\n", confirmation.Money(b.AdditionalRoomsPrice))
			fmt.Fprintf(writer, "Subtotal\t%s\n", confirmation.Money(b.Subtotal))
			if b.DiscountAmount > 0 {
				fmt.Fprintf(writer, "Discount\t-%s\n", confirmation.Money(b.DiscountAmount))
			}
			fmt.Fprintf(writer, "Tax (13%% %s)\t%s\n", quote.TaxLabel, confirmation.Money(b.TaxAmount))
			fmt.Fprintf(writer, "Total\t%s\n", confirmation.Money(b.Total))
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&req.ServiceID, "service", "", "Service id")
	cmd.Flags().StringVar(&req.Rooms, "rooms", "", "Number of rooms")
	cmd.Flags().StringVar(&req.FrequencyID, "frequency", "", "one-time, weekly, biweekly or monthly")
	return cmd
}
