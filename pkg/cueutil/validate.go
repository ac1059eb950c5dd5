// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is a compiled CUE schema with one root definition.
type Schema struct {
	ctx  *cue.Context
	root cue.Value
}

// CompileSchema compiles src and looks up the definition at rootPath
// (for example "#Config").
func CompileSchema(src, rootPath string) (*Schema, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileString(src)
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compile schema: %w", compiled.Err())
	}
	root := compiled.LookupPath(cue.ParsePath(rootPath))
	if !root.Exists() {
		return nil, fmt.Errorf("schema has no definition %s", rootPath)
	}
	return &Schema{ctx: ctx, root: root}, nil
}

// ValidateSource compiles CUE source and unifies it with the schema.
// Optional fields may stay non-concrete.
func (s *Schema) ValidateSource(data []byte, filePath string) (cue.Value, error) {
	return s.unify(s.ctx.CompileBytes(data, cue.Filename(filePath)), filePath)
}

// ValidateValue encodes a decoded document (TOML, JSON) and unifies it with
// the schema, so non-CUE formats get the same closedness and constraints.
func (s *Schema) ValidateValue(doc any, filePath string) (cue.Value, error) {
	return s.unify(s.ctx.Encode(doc), filePath)
}

func (s *Schema) unify(user cue.Value, filePath string) (cue.Value, error) {
	if user.Err() != nil {
		return cue.Value{}, FormatError(user.Err(), filePath)
	}
	unified := s.root.Unify(user)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cue.Value{}, FormatError(err, filePath)
	}
	return unified, nil
}
