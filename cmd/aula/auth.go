package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aulaschool/aula/internal/credentials"
	"github.com/aulaschool/aula/internal/output"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: `Sign in with email and password. The token is written to the token file
(session.token_file, default ~/.aula/token) and verified against the API.

The password is read from the terminal without echo, or from stdin when
stdin is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.readPassword()
			if err != nil {
				return err
			}
			if password == "" {
				return &output.CLIError{Summary: "empty password"}
			}

			ctx := cmd.Context()
			resp, err := a.client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if resp.Token == "" {
				return &output.CLIError{Summary: "login succeeded but no token was returned"}
			}

			a.session.SetToken(resp.Token)
			if err := a.store.Save(resp.Token); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}

			me, err := a.client.Me(ctx)
			if err != nil {
				return fmt.Errorf("verifying login: %w", err)
			}

			if a.jsonOut {
				return a.printer.JSON(me)
			}
			a.printer.Success("Logged in as %s (%s)", me.FullName(), me.Email)
			if a.tokenSource == credentials.SourceEnv {
				a.printer.Warning("%s is set and takes precedence over the saved token", credentials.EnvToken)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword prompts without echo on a terminal. Otherwise the first line
// of stdin is the password.
func (a *app) readPassword() (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.errOut, "Password: ") //nolint:errcheck
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.errOut) //nolint:errcheck
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Clear()
			removed, err := a.store.Remove()
			if err != nil {
				return fmt.Errorf("removing token: %w", err)
			}
			if removed {
				a.printer.Success("Logged out.")
			} else {
				a.printer.Info("Already logged out.")
			}
			if a.tokenSource == credentials.SourceEnv {
				a.printer.Warning("%s is still set; unset it to fully log out", credentials.EnvToken)
			}
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printer.JSON(me)
			}

			a.printer.KeyValue("Name", me.FullName())
			a.printer.KeyValue("Email", me.Email)
			a.printer.KeyValue("Role", orDash(me.RoleName))
			a.printer.KeyValue("School", me.SchoolID)
			a.printer.KeyValue("Token from", tokenSourceLabel(a.tokenSource, a.store.Path()))
			return nil
		},
	}
}

func tokenSourceLabel(src credentials.Source, path string) string {
	switch src {
	case credentials.SourceEnv:
		return credentials.EnvToken
	case credentials.SourceFile:
		return path
	default:
		return "-"
	}
}
