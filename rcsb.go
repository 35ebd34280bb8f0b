package helix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultSearchURL = "https://search.rcsb.org/rcsbsearch/v2/query"
	defaultDataURL   = "https://data.rcsb.org/rest/v1/core/entry"
)

// SearchResult is one RCSB PDB search hit.
type SearchResult struct {
	ID    string
	Title string
}

// RCSB is a client for the RCSB PDB search and metadata APIs.
// The zero value is not usable; call NewRCSB.
type RCSB struct {
	HTTP      *http.Client
	SearchURL string
	DataURL   string
}

// NewRCSB returns a client against the public RCSB endpoints with a
// request timeout.
func NewRCSB() *RCSB {
	return &RCSB{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		SearchURL: defaultSearchURL,
		DataURL:   defaultDataURL,
	}
}

type searchQuery struct {
	Type       string            `json:"type"`
	Service    string            `json:"service"`
	Parameters map[string]string `json:"parameters"`
}

type searchRequest struct {
	Query          searchQuery    `json:"query"`
	ReturnType     string         `json:"return_type"`
	RequestOptions requestOptions `json:"request_options"`
}

type requestOptions struct {
	Paginate           paginate `json:"paginate"`
	ResultsContentType []string `json:"results_content_type"`
}

type paginate struct {
	Start int `json:"start"`
	Rows  int `json:"rows"`
}

type searchResponse struct {
	ResultSet []struct {
		Identifier string `json:"identifier"`
	} `json:"result_set"`
}

type entryResponse struct {
	Struct struct {
		Title string `json:"title"`
	} `json:"struct"`
}

// Search runs a full-text query against the RCSB PDB and returns up to 10
// experimental entries with their titles.
func (c *RCSB) Search(query string) ([]SearchResult, error) {
	req := searchRequest{
		Query: searchQuery{
			Type:       "terminal",
			Service:    "full_text",
			Parameters: map[string]string{"value": query},
		},
		ReturnType: "entry",
		RequestOptions: requestOptions{
			Paginate:           paginate{Start: 0, Rows: 10},
			ResultsContentType: []string{"experimental"},
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("rcsb search: %w", err)
	}

	resp, err := c.HTTP.Post(c.SearchURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rcsb search: %w", err)
	}
	defer resp.Body.Close()
	// 204 means no matches, not an error.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rcsb search: unexpected status %s", resp.Status)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("rcsb search: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.ResultSet))
	for _, hit := range parsed.ResultSet {
		r := SearchResult{ID: hit.Identifier}
		if title, err := c.Title(hit.Identifier); err == nil {
			r.Title = title
		}
		results = append(results, r)
	}
	return results, nil
}

// Title fetches the structure title for a PDB ID from the entry metadata
// endpoint.
func (c *RCSB) Title(id string) (string, error) {
	resp, err := c.HTTP.Get(c.DataURL + "/" + id)
	if err != nil {
		return "", fmt.Errorf("rcsb entry %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rcsb entry %s: unexpected status %s", id, resp.Status)
	}
	var parsed entryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("rcsb entry %s: %w", id, err)
	}
	return parsed.Struct.Title, nil
}
