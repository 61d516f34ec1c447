package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pivotgrid/pkg/errors"
	"github.com/matzehuels/pivotgrid/pkg/observability"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

type sale struct {
	Country, City, Region string
	Qty                   float64
}

func config() ([]*pivot.Dimension[sale], []*pivot.Measure[sale]) {
	dims := []*pivot.Dimension[sale]{
		{Name: "Country", IsRow: true, Sequence: 0, GroupKey: func(s sale) string { return s.Country }},
		{Name: "City", IsRow: true, Sequence: 1, GroupKey: func(s sale) string { return s.City }},
		{Name: "Region", GroupKey: func(s sale) string { return s.Region }},
	}
	measures := []*pivot.Measure[sale]{{
		Name: "Qty",
		Aggregate: func(md pivot.MeasureData[sale]) float64 {
			return pivot.Sum(md.Cell, func(s sale) float64 { return s.Qty })
		},
	}}
	return dims, measures
}

var sales = []sale{
	{"US", "NYC", "East", 10},
	{"US", "LA", "West", 5},
	{"CA", "Toronto", "East", 3},
}

func newSession(t *testing.T, opts Options) *Session[sale] {
	t.Helper()
	s, err := NewSession[sale](nil, opts)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestSessionBuild(t *testing.T) {
	s := newSession(t, Options{})
	dims, measures := config()

	m, err := s.Build(context.Background(), sales, dims, measures, true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// 3 header rows; CA, Toronto... body: CA/Toronto, CA Total, US/LA, US/NYC, US Total, Grand Total
	if got := len(m.Rows); got != 3+6 {
		t.Errorf("rows = %d, want 9", got)
	}
	if s.Matrix() != m {
		t.Error("Matrix() does not return the last build")
	}
	if s.DataTree() == nil || s.HeaderTree() == nil {
		t.Fatal("trees not retained")
	}

	st := s.Stats()
	if st.Records != 3 || st.Rows != len(m.Rows) || st.Columns != m.Columns {
		t.Errorf("Stats() = %+v", st)
	}
	if st.Cache.Misses == 0 || st.Cache.Entries == 0 {
		t.Errorf("cache stats not recorded: %+v", st.Cache)
	}
}

func TestSessionBuildEmptyData(t *testing.T) {
	s := newSession(t, Options{})

	// Configuration is not checked for empty data.
	m, err := s.Build(context.Background(), nil, nil, nil, true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !m.Empty() {
		t.Errorf("Build(nil) rows = %d, want 0", len(m.Rows))
	}
}

func TestSessionBuildInvalid(t *testing.T) {
	s := newSession(t, Options{})
	dims, measures := config()
	dims[2].Disabled = true

	_, err := s.Build(context.Background(), sales, dims, measures, true)
	if !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("Build() error = %v, want INVALID_DIMENSION", err)
	}
	if s.DataTree() != nil {
		t.Error("tree built despite invalid configuration")
	}
}

func TestSessionToggle(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{})
	dims, measures := config()
	before, err := s.Build(ctx, sales, dims, measures, true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	collapsed, err := s.Toggle(ctx, "[Country:US]")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got, want := len(collapsed.Rows), len(before.Rows)-2; got != want {
		t.Errorf("rows after collapse = %d, want %d", got, want)
	}

	restored, err := s.Toggle(ctx, "[Country:US]")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if len(restored.Rows) != len(before.Rows) {
		t.Errorf("rows after expand = %d, want %d", len(restored.Rows), len(before.Rows))
	}
}

func TestSessionToggleErrors(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{})
	dims, measures := config()
	m, err := s.Build(ctx, sales, dims, measures, true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		id   string
		want errors.Code
	}{
		{"[Country:FR]", errors.ErrCodeNodeNotFound},
		{"[Country:US][City:LA]", errors.ErrCodeNotToggleable},
		{"[Country:US]#total", errors.ErrCodeNotToggleable},
		{pivot.RowGrandTotalID, errors.ErrCodeNotToggleable},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if _, err := s.Toggle(ctx, tt.id); !errors.Is(err, tt.want) {
				t.Errorf("Toggle(%q) error = %v, want %s", tt.id, err, tt.want)
			}
			if s.Matrix() != m {
				t.Error("failed toggle replaced the matrix")
			}
		})
	}
}

func TestSessionCollapseOption(t *testing.T) {
	s := newSession(t, Options{Collapse: []string{"[Country:CA]"}})
	dims, measures := config()

	m, err := s.Build(context.Background(), sales, dims, measures, true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	first := m.Rows[m.HeaderRows].Cells[0]
	if first.Value != "CA" || first.Expanded {
		t.Errorf("first body cell = %+v, want collapsed CA", first)
	}

	s2 := newSession(t, Options{Collapse: []string{"[Country:XX]"}})
	if _, err := s2.Build(context.Background(), sales, dims, measures, true); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("Build() error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestSessionCollapseOptionRollsBack(t *testing.T) {
	s := newSession(t, Options{Collapse: []string{"[Country:CA]", "[Country:XX]"}})
	dims, measures := config()

	_, err := s.Build(context.Background(), sales, dims, measures, true)
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Fatalf("Build() error = %v, want NODE_NOT_FOUND", err)
	}
	if !s.Cache().Expanded("[Country:CA]") {
		t.Error("[Country:CA] stayed collapsed after a failed collapse list")
	}
	if got := s.Cache().Collapsed(); len(got) != 0 {
		t.Errorf("Collapsed() = %v, want none", got)
	}
	first := s.Matrix().Rows[s.Matrix().HeaderRows].Cells[0]
	if first.Value != "CA" || !first.Expanded {
		t.Errorf("first body cell = %+v, want expanded CA", first)
	}
}

func TestSessionRefreshKeepsState(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{})
	dims, measures := config()
	if _, err := s.Build(ctx, sales, dims, measures, true); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := s.SetExpanded(ctx, "[Country:US]", false); err != nil {
		t.Fatalf("SetExpanded() error = %v", err)
	}

	more := append(append([]sale(nil), sales...), sale{"US", "SF", "West", 1})
	m, err := s.Refresh(ctx, more)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	var us string
	for _, r := range m.Rows[m.HeaderRows:] {
		if c := r.Cells[0]; c.NodeID == "[Country:US]" {
			us = c.Value
			if c.Expanded {
				t.Error("US expanded after refresh")
			}
			// East, West, Grand Total
			if got := r.Cells[len(r.Cells)-1].Value; got != "16" {
				t.Errorf("US total = %s, want 16", got)
			}
		}
	}
	if us == "" {
		t.Fatal("US row missing after refresh")
	}
}

func TestSessionRefreshWithoutBuild(t *testing.T) {
	s := newSession(t, Options{})
	if _, err := s.Refresh(context.Background(), sales); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Refresh() error = %v, want INVALID_INPUT", err)
	}
}

func TestSessionCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newSession(t, Options{})
	dims, measures := config()
	if _, err := s.Build(ctx, sales, dims, measures, true); err != context.Canceled {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestSessionLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := newSession(t, Options{Logger: logger})
	dims, measures := config()

	if _, err := s.Build(context.Background(), sales, dims, measures, true); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"built trees", "flattened matrix", s.ID[:8]} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type recordingHooks struct {
	observability.NoopPivotHooks
	builds  int
	toggles []string
}

func (h *recordingHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
	h.builds++
}

func (h *recordingHooks) OnToggle(_ context.Context, _ string, id string, _ bool, err error) {
	if err == nil {
		h.toggles = append(h.toggles, id)
	}
}

func TestSessionHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPivotHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := newSession(t, Options{})
	dims, measures := config()
	if _, err := s.Build(ctx, sales, dims, measures, true); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := s.Toggle(ctx, "[Country:US]"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	_, _ = s.Toggle(ctx, "[Country:FR]")

	if hooks.builds != 2 {
		t.Errorf("builds = %d, want 2", hooks.builds)
	}
	if len(hooks.toggles) != 1 || hooks.toggles[0] != "[Country:US]" {
		t.Errorf("toggles = %v, want [[Country:US]]", hooks.toggles)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"explicit id", Options{ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}, false},
		{"bad id", Options{ID: "session-1"}, true},
		{"empty collapse id", Options{Collapse: []string{""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (tt.opts.ID == "" || tt.opts.Logger == nil) {
				t.Errorf("defaults not applied: %+v", tt.opts)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"html", false},
		{"json", false},
		{"svg", true},
		{"HTML", true}, // case-sensitive
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}

	if err := ValidateTreeFormat("svg"); err != nil {
		t.Errorf("ValidateTreeFormat(svg) error = %v", err)
	}
	if err := ValidateTreeFormat("html"); err == nil {
		t.Error("ValidateTreeFormat(html) should fail")
	}
}
