package store

type EntityInput struct {
	ID         string
	Kind       string
	Name       string
	Summary    string
	SourceFile string
	SourceHash string
	Tags       []string
	Properties map[string]any
	Body       string
}

type Entity struct {
	ID         string
	Kind       string
	Name       string
	Summary    string
	SourceFile string
	SourceHash string
	Tags       []string
	Properties map[string]any
	Body       string
}

type EntitySummary struct {
	ID      string
	Kind    string
	Name    string
	Summary string
	Tags    []string
}

type Edge struct {
	From string
	To   string
	Type string
}

type SearchResult struct {
	ID      string
	Kind    string
	Name    string
	Tags    []string
	Score   float64
	Snippet string
}
