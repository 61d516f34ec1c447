package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pivotgrid/pkg/errors"
	"github.com/matzehuels/pivotgrid/pkg/observability"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
)

// Stats describes the last build of a session.
type Stats struct {
	Records     int
	Nodes       int // data tree
	HeaderNodes int
	Rows        int
	Columns     int
	BuildTime   time.Duration
	FlattenTime time.Duration
	Cache       pivot.CacheStats
}

// Session is one logical pivot table. It retains its input so toggles and
// data refreshes can rebuild, and it owns the node cache that carries
// expansion state between builds.
//
// A Session is not safe for concurrent use.
type Session[T any] struct {
	ID string

	logger   *log.Logger
	cache    *pivot.NodeCache[T]
	builder  *pivot.Builder[T]
	collapse []string

	data        []T
	dims        []*pivot.Dimension[T]
	measures    []*pivot.Measure[T]
	grandTotals bool
	configured  bool

	header *pivot.Node[T]
	tree   *pivot.Node[T]
	matrix *grid.Matrix
	stats  Stats
}

// NewSession creates a session around cache. A nil cache gets a fresh one.
func NewSession[T any](cache *pivot.NodeCache[T], opts Options) (*Session[T], error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	b := pivot.NewBuilder(cache)
	return &Session[T]{
		ID:       opts.ID,
		logger:   opts.Logger.With("session", opts.ID[:8]),
		cache:    b.Cache(),
		builder:  b,
		collapse: opts.Collapse,
		matrix:   &grid.Matrix{},
	}, nil
}

// Build validates the configuration, builds both trees, and flattens them.
//
// Empty data yields an empty matrix without touching the configuration.
// Otherwise configuration errors are returned before any tree is built.
// Identifiers listed in [Options.Collapse] are collapsed after the first
// build that produces nodes.
func (s *Session[T]) Build(ctx context.Context, data []T, dims []*pivot.Dimension[T], measures []*pivot.Measure[T], grandTotals bool) (*grid.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.data = data
	s.grandTotals = grandTotals
	if len(data) == 0 {
		s.dims, s.measures = dims, measures
		s.configured = false
		s.logger.Debug("no records, empty matrix")
		s.reset()
		return s.matrix, nil
	}

	if err := pivot.Validate(dims, measures); err != nil {
		return nil, err
	}
	s.dims = pivot.NormalizeDimensions(dims)
	pivot.NormalizeMeasures(measures)
	s.measures = measures
	s.configured = true

	m := s.rebuild(ctx)
	if len(s.collapse) == 0 {
		return m, nil
	}

	if err := s.applyCollapse(); err != nil {
		return nil, err
	}
	s.collapse = nil
	return s.flatten(ctx), nil
}

// applyCollapse collapses every id in s.collapse. If one of them fails,
// the ones already collapsed are expanded again so the cache still
// matches the current matrix.
func (s *Session[T]) applyCollapse() error {
	var applied []string
	for _, id := range s.collapse {
		wasExpanded := s.cache.Expanded(id)
		if err := s.cache.SetExpanded(id, false); err != nil {
			for _, done := range applied {
				_ = s.cache.SetExpanded(done, true)
			}
			return err
		}
		if wasExpanded {
			applied = append(applied, id)
		}
	}
	return nil
}

// Toggle flips the expansion of one group and rebuilds. Unknown
// identifiers fail with NODE_NOT_FOUND and nodes that cannot toggle with
// NOT_TOGGLEABLE; the matrix is left unchanged in both cases.
func (s *Session[T]) Toggle(ctx context.Context, id string) (*grid.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expanded, err := s.cache.Toggle(id)
	observability.Pivot().OnToggle(ctx, s.ID, id, expanded, err)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("toggled", "node", id, "expanded", expanded)
	return s.rebuild(ctx), nil
}

// SetExpanded expands or collapses one group and rebuilds.
func (s *Session[T]) SetExpanded(ctx context.Context, id string, expanded bool) (*grid.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.cache.SetExpanded(id, expanded); err != nil {
		return nil, err
	}
	return s.rebuild(ctx), nil
}

// Refresh rebuilds against new data with the configuration of the last
// Build. Groups that still exist keep their expansion state.
func (s *Session[T]) Refresh(ctx context.Context, data []T) (*grid.Matrix, error) {
	if s.dims == nil && s.measures == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session has no configuration; call Build first")
	}
	if !s.configured {
		return s.Build(ctx, data, s.dims, s.measures, s.grandTotals)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.data = data
	if len(data) == 0 {
		s.reset()
		return s.matrix, nil
	}
	return s.rebuild(ctx), nil
}

func (s *Session[T]) rebuild(ctx context.Context) *grid.Matrix {
	hooks := observability.Pivot()
	hooks.OnBuildStart(ctx, s.ID, len(s.data))

	start := time.Now()
	s.header = s.builder.BuildColumnHeaders(s.data, s.dims, s.measures, s.grandTotals)
	s.tree = s.builder.Build(s.data, s.dims, s.measures, s.grandTotals)
	s.stats = Stats{
		Records:     len(s.data),
		Nodes:       s.tree.Count(),
		HeaderNodes: s.header.Count(),
		BuildTime:   time.Since(start),
	}
	hooks.OnBuildComplete(ctx, s.ID, s.stats.Nodes+s.stats.HeaderNodes, s.stats.BuildTime, nil)

	s.logger.Debug("built trees",
		"records", s.stats.Records,
		"nodes", s.stats.Nodes,
		"header_nodes", s.stats.HeaderNodes,
		"duration", s.stats.BuildTime)

	return s.flatten(ctx)
}

func (s *Session[T]) flatten(ctx context.Context) *grid.Matrix {
	start := time.Now()
	s.matrix = grid.Build(s.header, s.tree, s.cache)
	s.stats.FlattenTime = time.Since(start)
	s.stats.Rows = len(s.matrix.Rows)
	s.stats.Columns = s.matrix.Columns
	s.stats.Cache = s.cache.Stats()

	observability.Pivot().OnFlattenComplete(ctx, s.ID, s.stats.Rows, s.stats.Columns, s.stats.FlattenTime)
	observability.Cache().OnCacheStats(ctx, s.ID, s.stats.Cache.Hits, s.stats.Cache.Misses, s.stats.Cache.Entries)

	s.logger.Debug("flattened matrix",
		"rows", s.stats.Rows,
		"columns", s.stats.Columns,
		"duration", s.stats.FlattenTime)
	return s.matrix
}

func (s *Session[T]) reset() {
	s.header, s.tree = nil, nil
	s.matrix = &grid.Matrix{}
	s.stats = Stats{Cache: s.cache.Stats()}
}

// Matrix returns the matrix of the last build.
func (s *Session[T]) Matrix() *grid.Matrix { return s.matrix }

// DataTree returns the data tree of the last build, or nil.
func (s *Session[T]) DataTree() *pivot.Node[T] { return s.tree }

// HeaderTree returns the column-header tree of the last build, or nil.
func (s *Session[T]) HeaderTree() *pivot.Node[T] { return s.header }

// Dimensions returns the normalized enabled dimensions.
func (s *Session[T]) Dimensions() []*pivot.Dimension[T] { return s.dims }

// Measures returns the configured measures.
func (s *Session[T]) Measures() []*pivot.Measure[T] { return s.measures }

// Cache returns the session's node cache.
func (s *Session[T]) Cache() *pivot.NodeCache[T] { return s.cache }

// Stats returns statistics of the last build.
func (s *Session[T]) Stats() Stats { return s.stats }
