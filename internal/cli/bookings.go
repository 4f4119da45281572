package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/confirmation"
)

func bookCmd(st *state) *cobra.Command {
	var input booking.BookInput
	var idempotencyKey string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a cleaning service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if idempotencyKey != "" {
				ctx = booking.NewContextWithIdempotencyKey(ctx, idempotencyKey)
			}

			rec, err := st.app.Bookings.Submit(ctx, &input)
			if err != nil {
				return printInputError(cmd, err)
			}

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}

			fmt.Fprint(cmd.OutOrStdout(), confirmation.Text(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&input.ServiceID, "service", "", "Service id")
	cmd.Flags().StringVar(&input.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.Time, "time", "", "Time slot, e.g. \"10:00 AM\"")
	cmd.Flags().StringVar(&input.Rooms, "rooms", "", "Number of rooms")
	cmd.Flags().StringVar(&input.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "Phone")
	cmd.Flags().StringVar(&input.Address, "address", "", "Service address")
	cmd.Flags().StringVar(&input.Instructions, "instructions", "", "Special instructions")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Reuse to make retries safe")
	return cmd
}

func bookingsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := st.app.Bookings.List(cmd.Context())
			if err != nil {
				return err
			}

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookings found.")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 2, 2, ' ', 0)
			fmt.Fprintln(writer, "BOOKING ID\tDATE\tTIME\tSERVICE\tNAME\tTOTAL")
			for _, r := range records {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.BookingID, r.Date, r.Time, r.ServiceName, r.Name, confirmation.Money(r.Total))
			}
			return writer.Flush()
		},
	}
}

func confirmationCmd(st *state) *cobra.Command {
	var format string
	var out string
	var download bool

	cmd := &cobra.Command{
		Use:   "confirmation <booking-id>",
		Short: "Render a booking confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := st.app.Bookings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if download {
				out = confirmation.FileName(rec)
			}

			w, closeOut, err := openOutput(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			switch format {
			case "text":
				_, err = fmt.Fprint(w, confirmation.Text(rec))
			case "html":
				err = confirmation.HTML(w, rec)
			case "share":
				_, err = fmt.Fprintln(w, confirmation.ShareText(rec))
			default:
				err = fmt.Errorf("unknown format %q (expected text, html or share)", format)
			}

			if closeErr := closeOut(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "text, html or share")
	cmd.Flags().StringVar(&out, "out", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&download, "download", false, "Save as zenith-booking-<id>.txt")
	return cmd
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func shareCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "share <booking-id>",
		Short: "Copy a short booking summary to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := st.app.Bookings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// There is no native share sheet in a terminal.
			outcome, err := confirmation.Share(cmd.Context(), rec, nil, systemClipboard{})
			if err != nil {
				st.l.LogWarn("Clipboard unavailable: %v", err)
				fmt.Fprintln(cmd.OutOrStdout(), confirmation.ShareText(rec))
				return nil
			}

			if outcome == confirmation.OutcomeCopied {
				fmt.Fprintln(cmd.OutOrStdout(), "Copied to Clipboard: booking details copied to clipboard.")
			}
			return nil
		},
	}
}

func importCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import bookings exported from browser storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := st.app.Import(cmd.Context(), f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookings.\n", n)
			return nil
		},
	}
}
