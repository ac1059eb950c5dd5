// SPDX-License-Identifier: MPL-2.0

package updatecheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// StateFileName is the file the last check is recorded in.
const StateFileName = "update-check.json"

// state is the persisted result of the last registry query.
type state struct {
	LastCheck time.Time `json:"last_check"`
	Latest    string    `json:"latest,omitempty"`
}

// loadState reads the state file. A missing file yields the zero state.
func loadState(fsys afero.Fs, path string) (state, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return state{}, nil
	}
	if err != nil {
		return state{}, fmt.Errorf("read %s: %w", path, err)
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return state{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// saveState writes the state file, creating its directory.
func saveState(fsys afero.Fs, path string, s state) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
