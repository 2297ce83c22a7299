package domain

import "time"

// UnknownSource is used when the search API does not report a publisher.
const UnknownSource = "Unknown"

// Article is the canonical in-memory record produced by the fetcher from one
// raw search result. Date keeps the API's free-text publish date; CreatedAt
// is the ingestion timestamp.
type Article struct {
	Title     string
	Link      string
	Snippet   string
	Date      string
	Source    string
	Thumbnail string
	CreatedAt time.Time
}

// StoredArticle mirrors one row of the articles table. URL is the identity
// key; re-ingesting the same link never duplicates a row.
type StoredArticle struct {
	ID          int64
	URL         string
	Title       string
	Description string
	ImageURL    string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// RunReport summarizes one pipeline execution. Success=false with a nil
// error is the soft "no articles found" outcome; fatal failures are returned
// as errors alongside a zero report.
type RunReport struct {
	Success   bool
	Processed int
	Message   string
}
