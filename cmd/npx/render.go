// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/invowk/npx/internal/config"
	"github.com/invowk/npx/internal/fallback"
	"github.com/invowk/npx/internal/issue"
	"github.com/invowk/npx/internal/pipeline"
	"github.com/invowk/npx/internal/pkgmgr"
	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/pkg/pkgspec"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// formatErrorForDisplay formats an error for user display. Actionable
// errors list their suggestions, and the error chain in verbose mode.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError writes "npx: <message>" to w, followed in verbose mode by the
// catalog entry matching the failure.
func renderError(w io.Writer, err error, opts pipeline.Options, verbose bool, scheme config.ColorScheme) {
	fmt.Fprintln(w, ErrorStyle.Render("npx:")+" "+formatErrorForDisplay(err, verbose))

	if !verbose {
		return
	}
	id := issueFor(err, opts)
	if id == 0 {
		return
	}
	rendered, renderErr := issue.Get(id).Render(glamourStyle(w, scheme))
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// issueFor maps a failure to the catalog entry that helps with it.
func issueFor(err error, opts pipeline.Options) issue.Id {
	var (
		ae       *issue.ActionableError
		notFound *runtime.CommandNotFoundError
		procErr  *runtime.ProcessError
		pErr     *pipeline.Error
	)
	switch {
	case errors.As(err, &ae) && ae.IssueID != 0:
		return ae.IssueID
	case errors.Is(err, pipeline.ErrMissingCommand), errors.Is(err, pkgspec.ErrNoCommandName):
		return issue.MissingCommandId
	case errors.Is(err, fallback.ErrUnsupportedShell):
		return issue.UnsupportedShellId
	case errors.Is(err, pkgmgr.ErrInstallFailed):
		return issue.InstallFailedId
	case errors.As(err, &notFound):
		if opts.NPM != "" && notFound.Name == opts.NPM {
			return issue.PackageManagerNotFoundId
		}
		return issue.CommandNotFoundId
	case errors.As(err, &procErr) && slices.Equal(procErr.Args, []string{"run", "env"}):
		return issue.EnvDumpFailedId
	case errors.As(err, &pErr) && pErr.Kind == pipeline.KindSpawn && errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// glamourStyle picks the glamour style for w: plain text when w is not a
// terminal, otherwise the configured or detected color scheme.
func glamourStyle(w io.Writer, scheme config.ColorScheme) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}

// renderNotice writes the update notification box.
func renderNotice(w io.Writer, n fmt.Stringer) {
	fmt.Fprintln(w, noticeStyle.Render(n.String()))
}
