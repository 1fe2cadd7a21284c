// Command aula is the command-line and terminal front-end for the aula
// school administration API.
package main

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/aulaschool/aula/internal/output"
	"github.com/aulaschool/aula/pkg/client"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(in, out, errOut)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		a.errorPrinter().FormatError(toCLIError(err))
		return 1
	}
	return 0
}

// toCLIError turns any command error into something printable. Gateway
// errors lose their wrapping so the user sees the server's message.
func toCLIError(err error) *output.CLIError {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	if client.IsStatus(err, http.StatusUnauthorized) {
		return &output.CLIError{
			Summary:    client.Message(err),
			Suggestion: "Your session may have expired. Run `aula login` to sign in again.",
			Err:        err,
		}
	}
	return &output.CLIError{Summary: client.Message(err), Err: err}
}
