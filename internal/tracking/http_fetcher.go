package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
)

type trackResponse struct {
	Success bool          `json:"success"`
	Order   *models.Order `json:"order"`
}

// HTTPFetcher ходит в GET /api/v1/orders/track/:tracking_id.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (f *HTTPFetcher) FetchByTrackingID(ctx context.Context, trackingID string) (*models.Order, error) {
	endpoint := fmt.Sprintf("%s/api/v1/orders/track/%s", f.baseURL, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("track %s: unexpected status %d", trackingID, resp.StatusCode)
	}

	var body trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode track response: %w", err)
	}
	if !body.Success || body.Order == nil {
		return nil, ErrNotFound
	}
	return body.Order, nil
}
