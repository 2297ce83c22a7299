package search

import (
	"context"
	"encoding/json"
)

// Query carries the parameters of a single news search.
type Query struct {
	Keyword string
	Locale  string
}

// RawResult is the external API's per-item shape. The source field arrives
// either as a plain string or as an object with a title; SourceField absorbs
// both.
type RawResult struct {
	Title     string      `json:"title"`
	Link      string      `json:"link"`
	Snippet   string      `json:"snippet"`
	Date      string      `json:"date"`
	Source    SourceField `json:"source"`
	Thumbnail string      `json:"thumbnail"`
}

// SourceField holds the flattened publisher name. Empty means the API sent
// nothing usable.
type SourceField struct {
	Name string
}

// UnmarshalJSON accepts "CNN", {"title":"CNN",...} or anything else (which
// leaves Name empty).
func (s *SourceField) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Name = plain
		return nil
	}

	var obj struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		s.Name = obj.Title
		return nil
	}

	s.Name = ""
	return nil
}

// Searcher runs one query against the external news search API.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]RawResult, error)
}
