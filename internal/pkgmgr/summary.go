// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"encoding/json"
	"log/slog"

	"github.com/itchyny/gojq"
)

// installSummaryQuery condenses "install --json" output. Older package
// managers list added packages; newer ones report counts.
const installSummaryQuery = `{
  added: (if (.added | type) == "array" then [.added[] | "\(.name)@\(.version)"] else .added end),
  changed: (.changed // .updated),
  removed: (if (.removed | type) == "array" then (.removed | length) else .removed end)
}`

var installSummary = mustCompile(installSummaryQuery)

func mustCompile(src string) *gojq.Code {
	query, err := gojq.Parse(src)
	if err != nil {
		panic(err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		panic(err)
	}
	return code
}

// summarizeInstall extracts added/changed/removed information from install
// JSON output. It returns nil when output is not a JSON object.
func summarizeInstall(output []byte) map[string]any {
	var doc any
	if err := json.Unmarshal(output, &doc); err != nil {
		return nil
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil
	}

	iter := installSummary.Run(doc)
	v, ok := iter.Next()
	if !ok {
		return nil
	}
	if err, isErr := v.(error); isErr {
		slog.Debug("summarizing install output failed", "error", err)
		return nil
	}
	summary, _ := v.(map[string]any)
	return summary
}

func logInstallSummary(output []byte) {
	summary := summarizeInstall(output)
	if summary == nil {
		slog.Debug("install produced no JSON summary")
		return
	}
	slog.Debug("install finished", "added", summary["added"], "changed", summary["changed"], "removed", summary["removed"])
}
