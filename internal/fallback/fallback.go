// SPDX-License-Identifier: MPL-2.0

package fallback

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

// Supported shells.
const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

// ErrUnsupportedShell is returned when neither the requested shell nor SHELL
// names a supported shell.
var ErrUnsupportedShell = errors.New("only bash, zsh and fish shells are supported")

// Shell names a shell with a fallback snippet.
type Shell string

var (
	// posixTemplate serves bash and zsh; only the hook name differs.
	posixTemplate = template.Must(template.New("posix").Parse(`
{{.Hook}}() {
  # Do not run within a pipe
  if test ! -t 1; then
    >&2 echo "command not found: $1"
    return 127
  fi
  if which npx > /dev/null; then
    echo "$1 not found. Trying with npx..." >&2
  else
    return 127
  fi
  if ! [[ $1 =~ @ ]]; then
    npx --no-install "$@"
  else
    npx "$@"
  fi
  return $?
}`))

	fishTemplate = template.Must(template.New("fish").Parse(`
function __fish_command_not_found_on_interactive --on-event fish_prompt
  functions --erase __fish_command_not_found_handler
  functions --erase __fish_command_not_found_setup

  function __fish_command_not_found_handler --on-event fish_command_not_found
    if string match -q -r @ $argv[1]
      npx $argv
    else
      npx --no-install $argv
    end
  end

  functions --erase __fish_command_not_found_on_interactive
end`))
)

// Detect returns the supported shell named by name: a shell name or path,
// matched by substring the way "bash" matches "/usr/local/bin/bash5".
func Detect(name string) (Shell, bool) {
	base := strings.ToLower(filepath.Base(name))
	for _, s := range []Shell{Bash, Zsh, Fish} {
		if strings.Contains(base, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Snippet renders the fallback snippet for shell, or for envShell (usually
// the SHELL variable) when shell is empty or unsupported.
func Snippet(shell, envShell string) (string, error) {
	for _, candidate := range []string{shell, envShell} {
		if candidate == "" {
			continue
		}
		if s, ok := Detect(candidate); ok {
			return Render(s)
		}
	}
	return "", fmt.Errorf("%w (got %q, SHELL=%q)", ErrUnsupportedShell, shell, envShell)
}

// Render renders the snippet for a supported shell.
func Render(s Shell) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)
	switch s {
	case Bash:
		err = posixTemplate.Execute(&buf, map[string]string{"Hook": "command_not_found_handle"})
	case Zsh:
		err = posixTemplate.Execute(&buf, map[string]string{"Hook": "command_not_found_handler"})
	case Fish:
		err = fishTemplate.Execute(&buf, nil)
	default:
		return "", fmt.Errorf("%w (got %q)", ErrUnsupportedShell, s)
	}
	if err != nil {
		return "", fmt.Errorf("render %s fallback: %w", s, err)
	}
	return buf.String(), nil
}
