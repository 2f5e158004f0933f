// ABOUTME: HTTP client for the gym backend's per-student measurement endpoint.
// ABOUTME: One request per fetch; no retry, the caller decides what to do on error.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harperreed/gymprogress/internal/models"

	log "github.com/sirupsen/logrus"
)

// selfStudentID addresses the authenticated student's own measurements.
const selfStudentID = "me"

// REST fetches samples from the gym backend.
type REST struct {
	BaseURL    string
	Token      string
	Location   *time.Location
	HTTPClient *http.Client
}

// NewREST creates a REST source for the given backend URL.
func NewREST(baseURL, token string) *REST {
	return &REST{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Token:    token,
		Location: time.Local,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// MeasurementsURL returns the endpoint for a student's measurements.
func (c *REST) MeasurementsURL(studentID string) string {
	if studentID == "" {
		studentID = selfStudentID
	}
	return fmt.Sprintf("%s/alunos/%s/medidas", c.BaseURL, url.PathEscape(studentID))
}

// Fetch performs GET {base}/alunos/{id}/medidas and decodes the body.
func (c *REST) Fetch(ctx context.Context, studentID string) (models.Store, error) {
	endpoint := c.MeasurementsURL(studentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create measurements request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("measurements request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read measurements response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("measurements request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	store, err := DecodeStoreIn(body, loc)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"endpoint": endpoint,
		"types":    len(store),
		"samples":  store.Len(),
		"took":     time.Since(start).String(),
	}).Debug("fetched measurements")

	return store, nil
}
