// Package pipeline runs the validate → build → flatten pipeline of a pivot
// table and keeps the state needed to toggle groups afterwards.
//
// The CLI, the interactive explorer, and library callers all go through a
// [Session], so a table is validated, built, and flattened the same way
// everywhere.
//
// # Stages
//
//  1. Validate: check dimensions and measures and normalize their order
//  2. Build: group the records into the data tree and the header tree
//  3. Flatten: lay both trees out as a [grid.Matrix]
//
// Toggling a group re-runs stages 2 and 3 from the retained input. The
// session's node cache keeps every other group's expansion state.
//
// [Render] writes a matrix as text, HTML or JSON, and [RenderTree] writes
// the data or header tree as Graphviz DOT or SVG.
//
// # Usage
//
//	s, err := pipeline.NewSession[dataset.Record](nil, pipeline.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	m, err := s.Build(ctx, records, dims, measures, true)
//	if err != nil {
//	    return err
//	}
//	m, err = s.Toggle(ctx, "[Country:US]")
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pivotgrid/pkg/errors"
)

// =============================================================================
// Output Formats - Single Source of Truth for the CLI
// =============================================================================

// Matrix output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Tree output formats.
const (
	FormatTable = "table"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
)

// MatrixFormats lists the formats a matrix can be rendered to.
var MatrixFormats = []string{FormatText, FormatHTML, FormatJSON}

// TreeFormats lists the formats a node tree can be rendered to.
var TreeFormats = []string{FormatTable, FormatDOT, FormatSVG}

// ValidateFormat checks that a matrix format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, MatrixFormats)
}

// ValidateTreeFormat checks that a tree format is valid.
func ValidateTreeFormat(format string) error {
	return errors.ValidateFormat(format, TreeFormats)
}

// =============================================================================
// Options - Session Configuration
// =============================================================================

// Options configures a Session.
type Options struct {
	// ID identifies the session in logs and hook events. It must be a UUID;
	// a random one is generated when empty.
	ID string `json:"id,omitempty"`

	// Collapse lists node identifiers to collapse after the first build.
	Collapse []string `json:"collapse,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	} else if _, err := uuid.Parse(o.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "session id %q", o.ID)
	}
	for _, id := range o.Collapse {
		if id == "" {
			return errors.New(errors.ErrCodeInvalidInput, "collapse: empty node id")
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
