package model

// SearchResult is a single hit scraped from the upstream results page.
// Link is the last path segment of the hit's href, never the full URL.
type SearchResult struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	Link     string `json:"link"`
	FileType string `json:"fileType,omitempty"`
}

// SearchResponse is the body of a successful search
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// SearchToken is issued by the upstream site for exactly one search
type SearchToken struct {
	Value string `json:"value" masq:"secret"`
}
