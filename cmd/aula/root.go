package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aulaschool/aula/internal/browser"
	"github.com/aulaschool/aula/internal/config"
	"github.com/aulaschool/aula/internal/credentials"
	"github.com/aulaschool/aula/internal/logger"
	"github.com/aulaschool/aula/internal/output"
	"github.com/aulaschool/aula/pkg/client"
)

// Replaced in tests.
var (
	openBrowser     = browser.Open
	copyToClipboard = clipboard.WriteAll
	now             = time.Now
)

// app carries what every command needs once the root pre-run has loaded
// configuration and the stored session.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfgFile  string
	schoolID int64
	jsonOut  bool
	verbose  bool

	cfg         *config.Config
	logger      *slog.Logger
	printer     *output.Printer
	store       *credentials.Store
	session     *client.Session
	tokenSource credentials.Source
	client      *client.Client
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "aula",
		Short: "School administration from the terminal",
		Long: `aula talks to the aula school administration API.

It manages users, courses, attendance, grades, virtual exams, payments,
invoices and payroll, and opens a terminal dashboard with school chat.

Example usage:
  aula login --email admin@school.edu   # Sign in and store the token
  aula users list --role teacher        # List the teachers of the school
  aula payments list --status pending   # Pending payments this year
  aula dashboard                        # School overview
  aula chat                             # Open the terminal UI`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .aula.yaml)")
	flags.Int64Var(&a.schoolID, "school", 0, "school ID (overrides api.school_id)")
	flags.BoolVar(&a.jsonOut, "json", false, "print raw JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newUsersCmd(a),
		newCoursesCmd(a),
		newClassroomsCmd(a),
		newAttendanceCmd(a),
		newGradesCmd(a),
		newExamsCmd(a),
		newPaymentsCmd(a),
		newInvoicesCmd(a),
		newPayrollCmd(a),
		newDashboardCmd(a),
		newSearchCmd(a),
		newChatCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger, printer, session and
// client shared by all commands.
func (a *app) setup(cmd *cobra.Command) error {
	v := viper.New()
	if f := cmd.Flags().Lookup("school"); f != nil {
		_ = v.BindPFlag("api.school_id", f)
	}

	cfg, err := config.LoadWith(v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	useColors := output.ResolveColors(cfg.Output.Colors)
	a.printer = output.NewPrinterWithWriters(a.out, a.errOut, useColors)
	a.logger = logger.New(a.errOut, logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		NoColor: !useColors,
		Verbose: a.verbose,
	})

	a.store, err = credentials.NewStore(cfg.Session.TokenFile)
	if err != nil {
		return fmt.Errorf("token file: %w", err)
	}
	token, source := a.store.Token()
	a.session = client.NewSession(token)
	a.tokenSource = source

	a.client = client.New(cfg.API.BaseURL, a.session,
		client.WithLogger(a.logger),
		client.WithRoles(cfg.Roles.RoleSet()),
	)

	a.logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"school_id", cfg.API.SchoolID,
		"token_source", string(source),
	)
	return nil
}

// errorPrinter returns the configured printer, or a plain one when setup
// never ran (bad flags, unreadable config).
func (a *app) errorPrinter() *output.Printer {
	if a.printer != nil {
		return a.printer
	}
	return output.NewPrinterWithWriters(a.out, a.errOut, output.ResolveColors(true))
}

// requireAuth fails early when there is no token to send.
func (a *app) requireAuth() error {
	if a.session.Authenticated() {
		return nil
	}
	return &output.CLIError{
		Summary:    "not logged in",
		Suggestion: "Run `aula login` or set " + credentials.EnvToken + ".",
	}
}

// school returns the selected school ID, requiring a session as well.
func (a *app) school() (int64, error) {
	if err := a.requireAuth(); err != nil {
		return 0, err
	}
	if a.cfg.API.SchoolID == 0 {
		return 0, &output.CLIError{
			Summary:    "no school selected",
			Suggestion: "Pass --school or set api.school_id in .aula.yaml.",
		}
	}
	return a.cfg.API.SchoolID, nil
}

// parseID parses a positional entity ID.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, &output.CLIError{Summary: fmt.Sprintf("invalid %s ID %q", kind, arg)}
	}
	return id, nil
}

// parseDate parses an optional YYYY-MM-DD flag value.
func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, &output.CLIError{
			Summary:    fmt.Sprintf("invalid --%s %q", flag, value),
			Suggestion: "Dates use the YYYY-MM-DD format.",
		}
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func formatAmount(amount float64, currency string) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	if currency != "" {
		return s + " " + currency
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
