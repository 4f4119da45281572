package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avstrong/zenith/internal/account"
	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/contact"
)

// readSecret prompts on a terminal without echo, or reads a line otherwise.
func readSecret(st *state, cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	if st.in == nil {
		st.in = bufio.NewReader(cmd.InOrStdin())
	}

	value, err := st.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func printInputError(cmd *cobra.Command, err error) error {
	inputErr := booking.IsInputError(err)
	if inputErr == nil {
		return err
	}

	for field, msgs := range inputErr.Fields() {
		for _, msg := range msgs {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
		}
	}
	return fmt.Errorf("form is incomplete")
}

func registerCmd(st *state) *cobra.Command {
	var input account.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if input.Password == "" {
				if input.Password, err = readSecret(st, cmd, "Password: "); err != nil {
					return err
				}
			}
			if input.ConfirmPassword == "" {
				if input.ConfirmPassword, err = readSecret(st, cmd, "Confirm password: "); err != nil {
					return err
				}
			}

			acc, err := st.app.Accounts.Register(cmd.Context(), &input)
			if errors.Is(err, account.ErrPasswordMismatch) {
				return fmt.Errorf("password mismatch: please ensure both passwords match")
			}
			if err != nil {
				return printInputError(cmd, err)
			}

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), acc)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account Created! Welcome to Zenith Cleaning Co., %s. Please verify your email.\n", acc.FirstName)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "Phone")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (prompted when empty)")
	cmd.Flags().StringVar(&input.ConfirmPassword, "confirm-password", "", "Password confirmation (prompted when empty)")
	cmd.Flags().BoolVar(&input.AgreeTerms, "agree-terms", false, "Agree to the terms and conditions")
	return cmd
}

func loginCmd(st *state) *cobra.Command {
	var input account.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Password == "" {
				var err error
				if input.Password, err = readSecret(st, cmd, "Password: "); err != nil {
					return err
				}
			}

			session, err := st.app.Accounts.Login(cmd.Context(), &input)
			if err != nil {
				return printInputError(cmd, err)
			}

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), session)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Welcome Back! You've successfully logged into Zenith Cleaning Co.")
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "Email")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (prompted when empty)")
	cmd.Flags().BoolVar(&input.RememberMe, "remember", false, "Remember me")
	return cmd
}

func contactCmd(st *state) *cobra.Command {
	var msg contact.Message

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the team",
		RunE: func(cmd *cobra.Command, args []string) error {
			receipt, err := st.app.Contact.Submit(cmd.Context(), &msg)
			if err != nil {
				return printInputError(cmd, err)
			}

			if st.outputJSON {
				return writeJSON(cmd.OutOrStdout(), receipt)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Message Sent Successfully! We'll get back to you within 2 hours during business hours.")
			return nil
		},
	}

	cmd.Flags().StringVar(&msg.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&msg.Email, "email", "", "Email")
	cmd.Flags().StringVar(&msg.Phone, "phone", "", "Phone")
	cmd.Flags().StringVar(&msg.Subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&msg.Message, "message", "", "Message")
	cmd.Flags().StringVar(&msg.ServiceType, "service", "", "Service of interest")
	return cmd
}
