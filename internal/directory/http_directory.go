package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"
)

const usersByEmailPath = "/api/v1/users/byEmail/"

// HTTPDirectory looks applicants up through the user service REST API.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *HTTPDirectory) FindByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	endpoint := d.baseURL + usersByEmailPath + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build user lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user lookup request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("user lookup returned %s", resp.Status)
	}

	var applicant domain.Applicant
	if err := json.NewDecoder(resp.Body).Decode(&applicant); err != nil {
		return nil, fmt.Errorf("decode user lookup response: %w", err)
	}
	return &applicant, nil
}
