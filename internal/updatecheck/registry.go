// SPDX-License-Identifier: MPL-2.0

package updatecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultRegistry is the public package registry.
	DefaultRegistry = "https://registry.npmjs.org"

	// abbreviatedMetadata requests the slim package document, which still
	// carries dist-tags.
	abbreviatedMetadata = "application/vnd.npm.install-v1+json"

	// maxJSONResponseBytes is the upper bound on a package document (10 MB).
	maxJSONResponseBytes = 10 << 20
)

var (
	// ErrPackageNotFound is returned when the registry has no such package.
	ErrPackageNotFound = errors.New("package not found in registry")
	// ErrNoLatestTag is returned when a package document lacks dist-tags.latest.
	ErrNoLatestTag = errors.New("package has no latest dist-tag")
)

type (
	// RegistryClient reads package metadata from a package registry.
	RegistryClient struct {
		httpClient *http.Client
		baseURL    string
		userAgent  string
	}

	// ClientOption configures a RegistryClient during construction.
	ClientOption func(*RegistryClient)

	// packageDocument is the subset of the registry package document we read.
	packageDocument struct {
		DistTags map[string]string `json:"dist-tags"`
	}
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(r *RegistryClient) {
		r.httpClient = c
	}
}

// WithBaseURL overrides the registry URL.
func WithBaseURL(base string) ClientOption {
	return func(r *RegistryClient) {
		r.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(r *RegistryClient) {
		r.userAgent = ua
	}
}

// NewRegistryClient creates a RegistryClient for DefaultRegistry.
func NewRegistryClient(opts ...ClientOption) *RegistryClient {
	c := &RegistryClient{
		httpClient: http.DefaultClient,
		baseURL:    DefaultRegistry,
		userAgent:  "npx/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestVersion returns the version the latest dist-tag of name points to.
func (c *RegistryClient) LatestVersion(ctx context.Context, name string) (string, error) {
	// Scoped names are fetched as "@scope%2Fname".
	docURL := c.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", abbreviatedMetadata)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", name, resp.StatusCode)
	}

	var doc packageDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&doc); err != nil {
		return "", fmt.Errorf("fetching %s: decoding response: %w", name, err)
	}

	latest := doc.DistTags["latest"]
	if latest == "" {
		return "", fmt.Errorf("%w: %s", ErrNoLatestTag, name)
	}
	return latest, nil
}
