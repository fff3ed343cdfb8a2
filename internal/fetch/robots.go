package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// ErrRobotsDisallowed is returned when robots.txt forbids fetching the
// report pages for the configured user agent.
var ErrRobotsDisallowed = errors.New("robots.txt disallows fetching the report pages")

// LoadRobots fetches and parses the robots.txt for the archive host and
// returns the rule group matching the given user agent.
//
// This is a courtesy check, so failures to retrieve or parse robots.txt
// return a nil group and no error: absence of rules means no restrictions.
// Only a malformed base URL is reported as an error.
func LoadRobots(ctx context.Context, client *http.Client, baseURL, userAgent string) (*robotstxt.Group, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build robots.txt request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil //nolint:nilerr // Unreachable robots.txt means no restrictions
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, nil //nolint:nilerr // Unparseable robots.txt means no restrictions
	}

	return data.FindGroup(userAgent), nil
}

// urlPath returns the path portion of a URL for robots.txt matching.
// Falls back to "/" when the URL cannot be parsed.
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
