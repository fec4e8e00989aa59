package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yourplaces/api/internal/domain/entity"
)

// Client resolves free-text addresses through the Google Geocoding API.
// Failures propagate to the caller unchanged; there are no retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve maps an address to coordinates. An address the upstream cannot
// resolve (status ZERO_RESULTS) is an error.
func (c *Client) Resolve(ctx context.Context, address string) (entity.Location, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return entity.Location{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.Location{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.Location{}, fmt.Errorf("read geocode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return entity.Location{}, fmt.Errorf("geocode api error: status %d", resp.StatusCode)
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return entity.Location{}, fmt.Errorf("unmarshal geocode response: %w", err)
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return entity.Location{}, fmt.Errorf("could not resolve address: %s", parsed.Status)
	}

	loc := parsed.Results[0].Geometry.Location
	return entity.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
