package oauthcache

import "net/http"

// HeaderPreservingClient keeps the Authorization header across redirects.
// Canvas occasionally 302s API calls (e.g. shard-local hosts) and the default
// client strips auth on the hop.
func HeaderPreservingClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if len(via) > 0 {
				r.Header = via[0].Header.Clone()
			}

			return nil
		},
	}
}
