package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"tidescraft/internal/contextpack"
	"tidescraft/internal/entity"
	"tidescraft/internal/expand"
	"tidescraft/internal/resolve"
)

type ResolveIDsInput struct {
	Query string `json:"query" jsonschema:"free-text query to resolve"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of IDs to return"`
}

type ResolveIDsOutput struct {
	IDs []string `json:"ids"`
}

type BuildContextInput struct {
	Query   string `json:"query" jsonschema:"free-text query to build context for"`
	Profile string `json:"profile,omitempty" jsonschema:"ordering profile name"`
	Max     int    `json:"max,omitempty" jsonschema:"override for the entity cap"`
}

type ExpandedOutput struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BuildContextOutput struct {
	Intent     string           `json:"intent"`
	PrimaryIDs []string         `json:"primary_ids"`
	Expanded   []ExpandedOutput `json:"expanded"`
	Order      []string         `json:"order"`
}

type SearchLoreInput struct {
	Query string `json:"query" jsonschema:"search terms"`
	Type  string `json:"type,omitempty" jsonschema:"restrict to a specific entity type"`
}

type SearchResultOutput struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Score   float64  `json:"score"`
	Snippet string   `json:"snippet,omitempty"`
}

type SearchLoreOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type GetEntityInput struct {
	ID string `json:"id" jsonschema:"canonical entity ID"`
}

type EntityOutput struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Name      string              `json:"name"`
	Aliases   []string            `json:"aliases"`
	Tags      []string            `json:"tags"`
	Summary   string              `json:"summary"`
	CrossRefs map[string][]string `json:"cross_refs"`
	Source    string              `json:"source"`
}

type ListEntitiesInput struct {
	Type string `json:"type,omitempty" jsonschema:"entity type filter"`
	Tag  string `json:"tag,omitempty" jsonschema:"tag filter"`
}

type EntitySummaryOutput struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

type ListEntitiesOutput struct {
	Entities []EntitySummaryOutput `json:"entities"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_ids",
		Description: "Resolve a free-text query to ranked canonical entity IDs",
	}, s.handleResolveIDs)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "build_context",
		Description: "Resolve, expand one hop, and order a capped context set for a query",
	}, s.handleBuildContext)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_lore",
		Description: "Full-text search over indexed entities",
	}, s.handleSearchLore)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Retrieve a specific entity by canonical ID",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List entities with optional type and tag filters",
	}, s.handleListEntities)
}

func (s *Server) handleResolveIDs(ctx context.Context, req *sdk.CallToolRequest, input ResolveIDsInput) (*sdk.CallToolResult, ResolveIDsOutput, error) {
	if input.Query == "" {
		return nil, ResolveIDsOutput{}, fmt.Errorf("query is required")
	}
	ids := resolve.Resolve(input.Query, s.col, input.Limit)
	if ids == nil {
		ids = []string{}
	}
	return nil, ResolveIDsOutput{IDs: ids}, nil
}

func (s *Server) handleBuildContext(ctx context.Context, req *sdk.CallToolRequest, input BuildContextInput) (*sdk.CallToolResult, BuildContextOutput, error) {
	if input.Query == "" {
		return nil, BuildContextOutput{}, fmt.Errorf("query is required")
	}

	intent := resolve.Classify(input.Query)
	profileName := input.Profile
	if profileName == "" {
		profileName = string(intent)
	}
	profile := s.cfg.Profile(profileName)

	primary := resolve.Resolve(input.Query, s.col, 0)
	expanded := expand.Expand(primary, s.col)
	expandedIDs := make([]string, 0, len(expanded))
	out := make([]ExpandedOutput, 0, len(expanded))
	for _, c := range expanded {
		expandedIDs = append(expandedIDs, c.ID)
		out = append(out, ExpandedOutput{ID: c.ID, Reason: c.Reason})
	}

	order := contextpack.BuildOrder(primary, expandedIDs, profile, input.Max, s.col)
	if primary == nil {
		primary = []string{}
	}
	if order == nil {
		order = []string{}
	}
	return nil, BuildContextOutput{
		Intent:     string(intent),
		PrimaryIDs: primary,
		Expanded:   out,
		Order:      order,
	}, nil
}

func (s *Server) handleSearchLore(ctx context.Context, req *sdk.CallToolRequest, input SearchLoreInput) (*sdk.CallToolResult, SearchLoreOutput, error) {
	if input.Query == "" {
		return nil, SearchLoreOutput{}, fmt.Errorf("query is required")
	}

	if s.db == nil {
		return nil, s.searchInMemory(input), nil
	}

	results, err := s.db.Search(ctx, input.Query, input.Type)
	if err != nil {
		return nil, SearchLoreOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, r := range results {
		output = append(output, SearchResultOutput{
			ID:      r.ID,
			Type:    r.Kind,
			Name:    r.Name,
			Tags:    append([]string{}, r.Tags...),
			Score:   r.Score,
			Snippet: r.Snippet,
		})
	}
	return nil, SearchLoreOutput{Results: output}, nil
}

// searchInMemory ranks with the token-overlap resolver when no store is
// attached.
func (s *Server) searchInMemory(input SearchLoreInput) SearchLoreOutput {
	tokens := resolve.Tokenize(input.Query)
	output := []SearchResultOutput{}
	for _, id := range resolve.Resolve(input.Query, s.col, 0) {
		e, ok := s.col.Get(id)
		if !ok {
			continue
		}
		if input.Type != "" && string(e.Kind) != input.Type {
			continue
		}
		output = append(output, SearchResultOutput{
			ID:    e.ID,
			Type:  string(e.Kind),
			Name:  e.Name,
			Tags:  append([]string{}, e.Tags...),
			Score: float64(resolve.Score(e, tokens)),
		})
	}
	return SearchLoreOutput{Results: output}
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, EntityOutput, error) {
	if input.ID == "" {
		return nil, EntityOutput{}, fmt.Errorf("id is required")
	}
	e, ok := s.col.Get(input.ID)
	if !ok {
		return nil, EntityOutput{}, fmt.Errorf("entity not found: %s", input.ID)
	}

	crossRefs := map[string][]string{}
	for category, targets := range e.CrossRefs {
		crossRefs[category] = append([]string{}, targets...)
	}
	summary := e.Summaries.Medium
	if summary == "" {
		summary = e.Summaries.Short
	}
	return nil, EntityOutput{
		ID:        e.ID,
		Type:      string(e.Kind),
		Name:      e.Name,
		Aliases:   append([]string{}, e.Aliases...),
		Tags:      append([]string{}, e.Tags...),
		Summary:   summary,
		CrossRefs: crossRefs,
		Source:    e.SourcePath,
	}, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	output := []EntitySummaryOutput{}
	for _, e := range s.col.All() {
		if input.Type != "" && string(e.Kind) != input.Type {
			continue
		}
		if input.Tag != "" && !hasTag(e, input.Tag) {
			continue
		}
		output = append(output, EntitySummaryOutput{
			ID:      e.ID,
			Type:    string(e.Kind),
			Name:    e.Name,
			Summary: e.Summaries.Short,
			Tags:    append([]string{}, e.Tags...),
		})
	}
	return nil, ListEntitiesOutput{Entities: output}, nil
}

func hasTag(e *entity.Entity, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
