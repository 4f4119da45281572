// Package cli is the zenith command line: quoting, booking and exporting
// confirmations against the configured storage.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/avstrong/zenith/internal/app"
	"github.com/avstrong/zenith/internal/config"
	"github.com/avstrong/zenith/internal/logger"
)

type state struct {
	configPath string
	outputJSON bool

	app *app.App
	l   *logger.Logger
	in  *bufio.Reader
}

func newRootCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zenith",
		Short: "Zenith Cleaning Co. pricing and booking",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(st.configPath)
			if err != nil {
				return err
			}

			l, err := logger.NewFromConfig(conf.Env, conf.LogLevel)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			a, err := app.New(conf, l)
			if err != nil {
				return err
			}

			st.l = l
			st.app = a

			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&st.configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&st.outputJSON, "json", false, "Output JSON")

	cmd.AddCommand(servicesCmd(st))
	cmd.AddCommand(quoteCmd(st))
	cmd.AddCommand(bookCmd(st))
	cmd.AddCommand(bookingsCmd(st))
	cmd.AddCommand(confirmationCmd(st))
	cmd.AddCommand(shareCmd(st))
	cmd.AddCommand(registerCmd(st))
	cmd.AddCommand(loginCmd(st))
	cmd.AddCommand(contactCmd(st))
	cmd.AddCommand(importCmd(st))
	cmd.AddCommand(serveCmd(st))

	return cmd
}

func Execute() error {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes one command line and releases the app afterwards, including
// when the command itself failed.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	st := &state{}

	cmd := newRootCmd(st)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	defer func() {
		if st.app == nil {
			return
		}

		if closeErr := st.app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}

		_ = st.l.Sync()
	}()

	return cmd.Execute()
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
