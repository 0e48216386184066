package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Candidate is one ranked result from the place-search provider.
type Candidate struct {
	Lat         float64
	Lon         float64
	Relevance   float64 // provider-reported importance, 0..1
	Class       string  // building, office, highway, ...
	Type        string  // house, yes, residential, ...
	OSMType     string  // node (point) vs way/relation (area)
	HouseNumber string  // structured address detail, when returned
	DisplayName string
}

// Searcher is the provider interface the resolver depends on. The concrete
// client speaks a Nominatim-style HTTP search API.
type Searcher interface {
	StructuredSearch(ctx context.Context, street, city, region string) ([]Candidate, error)
	BoundedSearch(ctx context.Context, query string, box BoundingBox) ([]Candidate, error)
	Search(ctx context.Context, query string) ([]Candidate, error)
}

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) StructuredSearch(ctx context.Context, street, city, region string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("street", street)
	params.Set("city", city)
	if region != "" {
		params.Set("state", region)
	}
	params.Set("countrycodes", "vn")
	return c.search(ctx, params)
}

func (c *Client) BoundedSearch(ctx context.Context, query string, box BoundingBox) ([]Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f", box.MinLon, box.MaxLat, box.MaxLon, box.MinLat))
	params.Set("bounded", "1")
	return c.search(ctx, params)
}

func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.search(ctx, params)
}

type searchResult struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Importance  float64 `json:"importance"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	OSMType     string  `json:"osm_type"`
	DisplayName string  `json:"display_name"`
	Address     struct {
		HouseNumber string `json:"house_number"`
	} `json:"address"`
}

func (c *Client) search(ctx context.Context, params url.Values) ([]Candidate, error) {
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Lat:         lat,
			Lon:         lon,
			Relevance:   r.Importance,
			Class:       r.Class,
			Type:        r.Type,
			OSMType:     r.OSMType,
			HouseNumber: r.Address.HouseNumber,
			DisplayName: r.DisplayName,
		})
	}
	return candidates, nil
}
