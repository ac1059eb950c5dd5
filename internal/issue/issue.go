// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingCommandId Id = iota + 1
	CommandNotFoundId
	PackageManagerNotFoundId
	InstallFailedId
	UnsupportedShellId
	ConfigLoadFailedId
	EnvDumpFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue and its links as terminal Markdown using the
// glamour style at stylePath ("dark", "light", "notty" or a JSON file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

const npxDocs HttpLink = "https://docs.npmjs.com/cli/commands/npx"

var (
	render = glamour.Render

	missingCommandIssue = &Issue{
		id: MissingCommandId,
		mdMsg: `
# No command given

npx needs a command to run, a package to install, or a --call string.

## Things you can try:
~~~
$ npx cowsay hello
$ npx -p typescript tsc --version
$ npx -c 'echo $npm_package_name'
~~~`,
		docLinks: []HttpLink{npxDocs},
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found

The package installed fine, but none of its bins is named after the
command you asked for.

## Things you can try:
- Name the package explicitly and the bin separately:
~~~
$ npx -p @angular/cli ng version
~~~
- List the bins a package provides:
~~~
$ npm view <package> bin
~~~`,
		docLinks: []HttpLink{npxDocs},
		extLinks: []HttpLink{"https://docs.npmjs.com/cli/configuring-npm/package-json#bin"},
	}

	packageManagerNotFoundIssue = &Issue{
		id: PackageManagerNotFoundId,
		mdMsg: `
# Package manager not found

npx shells out to a package manager (npm by default) to locate the cache,
read config and install packages, and it is not on your PATH.

## Things you can try:
- Install Node.js, which ships npm
- Point npx at another executable:
~~~
$ npx --npm /opt/node/bin/npm <command>
$ export NPX_NPM=pnpm
~~~`,
		docLinks: []HttpLink{npxDocs},
		extLinks: []HttpLink{"https://nodejs.org/en/download"},
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Install failed

The package manager exited with an error while installing into the
temporary prefix. Its output above usually names the cause.

## Common causes:
- A typo in the package name or version range
- No network access to the registry
- A broken or full cache directory

## Things you can try:
~~~
$ npm view <package> versions
$ npm cache verify
$ npx --cache /tmp/fresh-cache <command>
~~~`,
		docLinks: []HttpLink{npxDocs},
		extLinks: []HttpLink{"https://docs.npmjs.com/cli/commands/npm-cache"},
	}

	unsupportedShellIssue = &Issue{
		id: UnsupportedShellId,
		mdMsg: `
# Unsupported shell for auto-fallback

Command-not-found hooks can only be generated for bash, zsh and fish.

## Things you can try:
~~~
$ npx --shell-auto-fallback bash >> ~/.bashrc
$ npx --shell-auto-fallback fish >> ~/.config/fish/config.fish
~~~`,
		docLinks: []HttpLink{npxDocs},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

npx reads config.cue or config.toml from its config directory, then
applies NPX_* environment variables.

## Things you can try:
- Validate CUE files with the cue tool:
~~~
$ cue vet ~/.config/npx/config.cue
~~~
- Check NPX_* variables for typos:
~~~
$ env | grep ^NPX_
~~~
- Move the file aside to fall back to defaults`,
		docLinks: []HttpLink{npxDocs},
		extLinks: []HttpLink{"https://cuelang.org/docs/", "https://toml.io/en/v1.0.0"},
	}

	envDumpFailedIssue = &Issue{
		id: EnvDumpFailedId,
		mdMsg: `
# Could not read the package manager environment

npx runs ` + "`npm run env`" + ` to learn the variables scripts would see, and
that command failed or printed something that is not KEY=value lines.

## Things you can try:
~~~
$ npm run env
~~~
- Fix any package.json or .npmrc errors it reports`,
		docLinks: []HttpLink{npxDocs},
		extLinks: []HttpLink{"https://docs.npmjs.com/cli/commands/npm-run-script"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

The command exists but could not be executed.

## Things you can try:
~~~
$ ls -l node_modules/.bin/<command>
$ chmod +x <file>
~~~
- Check that the cache directory is writable`,
		docLinks: []HttpLink{npxDocs},
	}

	issues = map[Id]*Issue{
		missingCommandIssue.Id():         missingCommandIssue,
		commandNotFoundIssue.Id():        commandNotFoundIssue,
		packageManagerNotFoundIssue.Id(): packageManagerNotFoundIssue,
		installFailedIssue.Id():          installFailedIssue,
		unsupportedShellIssue.Id():       unsupportedShellIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		envDumpFailedIssue.Id():          envDumpFailedIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
