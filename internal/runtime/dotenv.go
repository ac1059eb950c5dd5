// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"regexp"
	"strings"
)

// dotenvLinePattern matches a KEY=VALUE assignment. Anything else in a
// package-manager env dump (lifecycle banners, continuation lines of
// multi-line shell functions) is not part of the environment.
var dotenvLinePattern = regexp.MustCompile(`^\s*([\w.-]+)\s*=\s*(.*?)\s*$`)

// ParseDotenv parses newline-delimited KEY=VALUE output into an Env.
//
// The first '=' splits key from value and surrounding whitespace is trimmed.
// Values are taken literally: no variable expansion and no comment stripping.
// One pair of matching surrounding quotes is removed, and inside double
// quotes a literal \n becomes a newline. Lines that are not assignments are
// skipped. Later assignments win.
func ParseDotenv(content []byte) Env {
	env := Env{}
	for line := range strings.Lines(string(content)) {
		m := dotenvLinePattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}
		env[m[1]] = parseDotenvValue(m[2])
	}
	return env
}

// parseDotenvValue unquotes a trimmed value.
func parseDotenvValue(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first != last || (first != '"' && first != '\'') {
		return value
	}
	inner := value[1 : len(value)-1]
	if first == '"' {
		inner = strings.ReplaceAll(inner, `\n`, "\n")
	}
	return strings.TrimSpace(inner)
}
