package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"issuecomb/app/issue"
)

const defaultUserAgent = "issuecomb/1.0"

// Some deployments reject plain client identifiers outright, so requests
// to those platforms carry a browser-like identity instead.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type headerOpts struct {
	accept      string
	auth        string
	contentType string
	browser     bool
}

func newRequest(ctx context.Context, method, url string, body io.Reader, opts headerOpts) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if opts.browser {
		req.Header.Set("User-Agent", browserUserAgent)
	} else {
		req.Header.Set("User-Agent", defaultUserAgent)
	}
	if opts.accept != "" {
		req.Header.Set("Accept", opts.accept)
	}
	if opts.auth != "" {
		req.Header.Set("Authorization", opts.auth)
	}
	if opts.contentType != "" {
		req.Header.Set("Content-Type", opts.contentType)
	}

	return req, nil
}

// checkResponse maps a non-2xx status onto an UpstreamError carrying the
// platform name and status code.
func checkResponse(resp *http.Response, platform issue.Platform) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &issue.UpstreamError{Platform: platform, StatusCode: resp.StatusCode}
}

// validateJSONResponse rejects 200 responses whose content type is not
// JSON. Some deployments answer automated clients with an HTML challenge
// page instead of a clean HTTP error.
func validateJSONResponse(resp *http.Response, platform issue.Platform) error {
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		return nil
	}
	return &issue.MalformedResponseError{
		Platform: platform,
		Detail:   fmt.Sprintf("non-JSON response (%s)", contentType),
	}
}

// validateNotHTML rejects response bodies that are HTML documents where
// structured data was expected, the same failure class as a non-JSON
// content type.
func validateNotHTML(body string, platform issue.Platform) error {
	trimmed := strings.ToLower(strings.TrimSpace(body))
	if strings.HasPrefix(trimmed, "<!") || strings.HasPrefix(trimmed, "<html") || strings.HasPrefix(trimmed, "<head") {
		return &issue.MalformedResponseError{Platform: platform, Detail: "HTML instead of expected data"}
	}
	return nil
}
