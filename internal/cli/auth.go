package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/core"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password, credential string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Long: `Log in with email and password, or with a Google ID token credential.
Without --password the password is read from standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				token string
				err   error
			)
			if credential != "" {
				token, err = app.API.GoogleLogin(ctx, credential)
			} else {
				if password == "" {
					fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
					if password, err = readLine(cmd.InOrStdin()); err != nil {
						return err
					}
				}
				req := core.LoginRequest{Email: strings.TrimSpace(email), Password: password}
				if err := core.ValidateLogin(req); err != nil {
					return err
				}
				token, err = app.API.Login(ctx, req)
			}
			if err != nil {
				return err
			}

			if err := app.store.Login(ctx, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", app.store.User().DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&credential, "google-credential", "", "Google ID token to exchange instead of a password")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity in the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			renderUser(cmd.OutOrStdout(), app.store.User())
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var req core.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Email = strings.TrimSpace(req.Email)
			if err := core.ValidateLogin(core.LoginRequest{Email: req.Email, Password: req.Password}); err != nil {
				return err
			}
			if err := app.API.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! You can now log in.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	return cmd
}

func newCVCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cv",
		Short: "Print the public CV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cv, err := app.API.GetCV(cmd.Context())
			if err != nil {
				return err
			}
			renderCV(cmd.OutOrStdout(), cv)
			return nil
		},
	}
}
