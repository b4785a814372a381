// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sourcedestination/saidb/internal/ctxlog"
	"github.com/sourcedestination/saidb/internal/graphfile"
	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
	"github.com/sourcedestination/saidb/pkg/health"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Store health",
		Tags:        []string{"system"},
	}, s.handleHealth)

	huma.Register(s.api, huma.Operation{
		OperationID:   "add-graph",
		Method:        http.MethodPost,
		Path:          "/api/v1/graphs",
		Summary:       "Store a graph",
		Tags:          []string{"graphs"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddGraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-graphs",
		Method:      http.MethodGet,
		Path:        "/api/v1/graphs",
		Summary:     "List stored graph ids in ascending order",
		Tags:        []string{"graphs"},
	}, s.handleListGraphs)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-graph",
		Method:      http.MethodGet,
		Path:        "/api/v1/graphs/{id}",
		Summary:     "Retrieve a graph",
		Tags:        []string{"graphs"},
	}, s.handleGetGraph)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-graph",
		Method:        http.MethodDelete,
		Path:          "/api/v1/graphs/{id}",
		Summary:       "Delete a graph and every row that belongs to it",
		Tags:          []string{"graphs"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteGraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-graphs",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Find graphs carrying a feature on the graph, a node, or an edge",
		Tags:        []string{"search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "store-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Row counts and statement statistics",
		Tags:        []string{"system"},
	}, s.handleStats)
}

// --- Request/Response types for huma ---

type healthOutput struct {
	Status int
	Body   health.Metrics
}

type addGraphInput struct {
	Body graphfile.Document
}
type addGraphOutput struct {
	Location string `header:"Location"`
	Body     struct {
		ID int64 `json:"id" doc:"Id assigned to the stored graph"`
	}
}

type listGraphsInput struct {
	After int64 `query:"after" minimum:"0" doc:"Return ids greater than this one"`
	Limit int   `query:"limit" minimum:"0" maximum:"1000" doc:"Page size; 0 selects the default"`
}
type listGraphsOutput struct {
	Body struct {
		IDs  []int64 `json:"ids"`
		Next *int64  `json:"next,omitempty" doc:"Pass as after to fetch the next page"`
	}
}

type graphIDInput struct {
	ID int64 `path:"id" minimum:"1"`
}
type getGraphOutput struct {
	Body graphfile.Document
}

type searchInput struct {
	Name  string `query:"name" required:"true" minLength:"1" maxLength:"256" doc:"Feature name"`
	Value string `query:"value" maxLength:"256" doc:"Feature value; omit to match any value"`

	hasValue bool
}

// Resolve records whether value was sent at all, since an empty value is a
// legitimate feature value.
func (i *searchInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	i.hasValue = u.Query().Has("value")
	return nil
}

type searchOutput struct {
	Body struct {
		IDs []int64 `json:"ids"`
	}
}

type statsOutput struct {
	Body struct {
		Backend    string              `json:"backend"`
		Graphs     int64               `json:"graphs"`
		Nodes      int64               `json:"nodes"`
		Edges      int64               `json:"edges"`
		Statements store.StatsSnapshot `json:"statements"`
	}
}

// --- Handlers ---

func (s *Server) handleHealth(ctx context.Context, _ *struct{}) (*healthOutput, error) {
	out := &healthOutput{Status: http.StatusOK, Body: s.health.Check(ctx, s.store)}
	if !out.Body.Available {
		out.Status = http.StatusServiceUnavailable
	}
	return out, nil
}

func (s *Server) handleAddGraph(ctx context.Context, input *addGraphInput) (*addGraphOutput, error) {
	g, err := input.Body.Build()
	if err != nil {
		return nil, storeError(ctx, "building graph", err)
	}
	id, err := s.store.AddGraph(ctx, g)
	if err != nil {
		return nil, storeError(ctx, "storing graph", err)
	}
	out := &addGraphOutput{Location: "/api/v1/graphs/" + strconv.FormatInt(id, 10)}
	out.Body.ID = id
	return out, nil
}

func (s *Server) handleListGraphs(ctx context.Context, input *listGraphsInput) (*listGraphsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	ids, err := s.store.ListGraphIDs(ctx, input.After, limit)
	if err != nil {
		return nil, storeError(ctx, "listing graphs", err)
	}
	out := &listGraphsOutput{}
	out.Body.IDs = ids
	if out.Body.IDs == nil {
		out.Body.IDs = []int64{}
	}
	if len(ids) == limit {
		next := ids[len(ids)-1]
		out.Body.Next = &next
	}
	return out, nil
}

func (s *Server) handleGetGraph(ctx context.Context, input *graphIDInput) (*getGraphOutput, error) {
	g, err := s.store.GetGraph(ctx, input.ID)
	if err != nil {
		return nil, storeError(ctx, "retrieving graph", err)
	}
	return &getGraphOutput{Body: graphfile.FromGraph(g)}, nil
}

func (s *Server) handleDeleteGraph(ctx context.Context, input *graphIDInput) (*struct{}, error) {
	if err := s.store.DeleteGraph(ctx, input.ID); err != nil {
		return nil, storeError(ctx, "deleting graph", err)
	}
	return nil, nil
}

func (s *Server) handleSearch(ctx context.Context, input *searchInput) (*searchOutput, error) {
	var (
		ids []int64
		err error
	)
	if input.hasValue {
		ids, err = s.store.FindGraphsWithFeature(ctx, input.Name, input.Value)
	} else {
		ids, err = s.store.FindGraphsWithFeatureName(ctx, input.Name)
	}
	if err != nil {
		return nil, storeError(ctx, "searching graphs", err)
	}
	out := &searchOutput{}
	out.Body.IDs = ids
	return out, nil
}

func (s *Server) handleStats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	out := &statsOutput{}
	out.Body.Backend = s.store.Backend()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.Body.Graphs, err = s.store.CountGraphs(gctx); return err })
	g.Go(func() (err error) { out.Body.Nodes, err = s.store.CountNodes(gctx); return err })
	g.Go(func() (err error) { out.Body.Edges, err = s.store.CountEdges(gctx); return err })
	if err := g.Wait(); err != nil {
		return nil, storeError(ctx, "counting rows", err)
	}

	out.Body.Statements = s.store.Stats()
	return out, nil
}

// storeError maps a coded error onto an HTTP status. Server-side failures
// are logged with their structured fields.
func storeError(ctx context.Context, msg string, err error) error {
	status := saierr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		ctxlog.FromContext(ctx).ErrorContext(ctx, msg,
			"error", err,
			"code", string(saierr.CodeOf(err)),
			"fields", saierr.FieldsOf(err),
		)
	}
	return huma.NewError(status, msg, err)
}
