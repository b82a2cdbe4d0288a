package domain

// CatalogGame is a search hit from the external game-catalog service. It is
// a read-only projection; adding one to the collection goes through the
// normal game creation flow.
type CatalogGame struct {
	ExternalID  string   `json:"external_id"`
	Title       string   `json:"title"`
	ReleaseYear int      `json:"release_year,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
}
