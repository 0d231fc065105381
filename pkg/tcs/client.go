// Package tcs fetches shipping labels from the TCS courier gateway. The
// gateway streams the label PDF directly, so this client deals in raw bytes
// rather than JSON resources.
package tcs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client talks to the TCS label gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a TCS client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Label is a fetched shipping label, passed through to the caller verbatim.
type Label struct {
	Data        []byte
	Filename    string
	ContentType string
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

var filenameRe = regexp.MustCompile(`filename="?([^";]+)"?`)

// GetLabel downloads the label PDF for a consignment number. The filename
// comes from the gateway's Content-Disposition header when present.
func (c *Client) GetLabel(ctx context.Context, consignmentNo string) (*Label, error) {
	consignmentNo = strings.TrimSpace(consignmentNo)
	if consignmentNo == "" {
		return nil, fmt.Errorf("consignment number is required")
	}

	url := fmt.Sprintf("%s/tcs/label/%s", c.baseURL, consignmentNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		msg := fmt.Sprintf("label fetch failed with status %d", resp.StatusCode)
		if json.Unmarshal(body, &errResp) == nil {
			if errResp.Message != "" {
				msg = errResp.Message
			} else if errResp.Error != "" {
				msg = errResp.Error
			}
		}
		log.Warn().
			Str("consignment_no", consignmentNo).
			Int("status_code", resp.StatusCode).
			Msg("[TCS] Label fetch failed")
		return nil, fmt.Errorf("tcs: %s", msg)
	}

	label := &Label{
		Data:        body,
		Filename:    fmt.Sprintf("label-%s.pdf", consignmentNo),
		ContentType: resp.Header.Get("Content-Type"),
	}
	if label.ContentType == "" {
		label.ContentType = "application/pdf"
	}
	if m := filenameRe.FindStringSubmatch(resp.Header.Get("Content-Disposition")); m != nil {
		label.Filename = m[1]
	}
	return label, nil
}
