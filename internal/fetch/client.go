package fetch

import (
	"fmt"
	"net/http"
	"time"
)

// maxRedirects caps redirect chains. The archive occasionally redirects
// between the http and https hosts; anything longer indicates a loop.
const maxRedirects = 10

// NewHTTPClient creates the HTTP client used for archive fetches.
// The client sets a hard per-request timeout and caps redirect hops.
//
// Design decision: We build the client here rather than accepting a bare
// http.DefaultClient because the default client has no timeout, and a
// hung request would stall the entire sequential run.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}
