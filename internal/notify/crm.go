package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BookingSummary is the payload pushed to the CRM after a successful commit.
// BusinessID comes from configuration; it is never baked into booking logic.
type BookingSummary struct {
	BookingID       int64  `json:"booking_id"`
	Reference       string `json:"reference"`
	RestaurantID    int64  `json:"restaurant_id"`
	BusinessID      string `json:"business_id,omitempty"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	PartySize       int    `json:"party_size"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// CRMClient posts booking summaries to an external CRM endpoint. Delivery is
// best-effort; callers log failures and never fail the booking over them.
type CRMClient struct {
	URL        string
	BusinessID string
	HTTPClient *http.Client
}

func NewCRMClient(url, businessID string) *CRMClient {
	return &CRMClient{
		URL:        url,
		BusinessID: businessID,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled reports whether a CRM endpoint is configured at all.
func (c *CRMClient) Enabled() bool {
	return c != nil && c.URL != ""
}

func (c *CRMClient) Notify(ctx context.Context, summary BookingSummary) error {
	if !c.Enabled() {
		return nil
	}
	if summary.BusinessID == "" {
		summary.BusinessID = c.BusinessID
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal crm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build crm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send to crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("crm responded with status %d", resp.StatusCode)
	}
	return nil
}
