package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	commit    = "unknown"
	buildTime = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, build information, and Go runtime version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, version) //nolint:errcheck
				return nil
			}

			if a.jsonOut {
				return a.printer.JSON(map[string]string{
					"version":   version,
					"commit":    commit,
					"built":     buildTime,
					"goVersion": runtime.Version(),
					"platform":  runtime.GOOS + "/" + runtime.GOARCH,
					"api":       a.cfg.API.BaseURL,
				})
			}

			fmt.Fprintf(w, "aula version %s\n", version)                          //nolint:errcheck
			fmt.Fprintf(w, "  commit:     %s\n", commit)                          //nolint:errcheck
			fmt.Fprintf(w, "  built:      %s\n", buildTime)                       //nolint:errcheck
			fmt.Fprintf(w, "  go version: %s\n", runtime.Version())               //nolint:errcheck
			fmt.Fprintf(w, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH) //nolint:errcheck
			fmt.Fprintf(w, "  api:        %s\n", a.cfg.API.BaseURL)               //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
