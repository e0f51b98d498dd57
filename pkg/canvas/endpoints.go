package canvas

import "net/http"

// endpoint is the static description of one Canvas API operation: HTTP
// method, path template (fmt-style, one %s per positional id), and whether a
// bearer token is mandatory before dispatch.
type endpoint struct {
	method string
	path   string
	auth   bool
}

var (
	epTokenExchange = endpoint{http.MethodPost, "/login/oauth2/token", false}

	epListCourses    = endpoint{http.MethodGet, "/api/v1/courses", false}
	epAccountCourses = endpoint{http.MethodGet, "/api/v1/accounts/%s/courses", false}
	epGetCourse      = endpoint{http.MethodGet, "/api/v1/courses/%s", false}
	epCreateCourse   = endpoint{http.MethodPost, "/api/v1/accounts/%s/courses", true}
	epUpdateCourse   = endpoint{http.MethodPut, "/api/v1/courses/%s", true}
	epDeleteCourse   = endpoint{http.MethodDelete, "/api/v1/courses/%s", true}

	// The documented collection shows the settings pair without bearer auth;
	// the token is still attached when present.
	epGetCourseSettings    = endpoint{http.MethodGet, "/api/v1/courses/%s/settings", false}
	epUpdateCourseSettings = endpoint{http.MethodPut, "/api/v1/courses/%s/settings", false}

	epListAccounts = endpoint{http.MethodGet, "/api/v1/accounts", false}
	epGetAccount   = endpoint{http.MethodGet, "/api/v1/accounts/%s", false}

	epListModules        = endpoint{http.MethodGet, "/api/v1/courses/%s/modules", false}
	epListModuleItems    = endpoint{http.MethodGet, "/api/v1/courses/%s/modules/%s/items", false}
	epListPages          = endpoint{http.MethodGet, "/api/v1/courses/%s/pages", false}
	epListContentExports = endpoint{http.MethodGet, "/api/v1/courses/%s/content_exports", false}
)
