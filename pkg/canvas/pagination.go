package canvas

import (
	"net/http"
	"strings"
)

// nextCursor pulls the rel="next" target out of a Canvas Link header. The
// returned value is opaque to callers; an empty string means the final page.
func nextCursor(h http.Header) string {
	link := h.Get("Link")
	if link == "" {
		return ""
	}

	for _, entry := range strings.Split(link, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return strings.Trim(target, "<>")
			}
		}
	}

	return ""
}
