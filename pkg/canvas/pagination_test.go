package canvas

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCursor(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{
			name:     "no header",
			link:     "",
			expected: "",
		},
		{
			name: "canvas style header",
			link: `<https://canvas.example.edu/api/v1/courses?page=2&per_page=10>; rel="current",` +
				`<https://canvas.example.edu/api/v1/courses?page=3&per_page=10>; rel="next",` +
				`<https://canvas.example.edu/api/v1/courses?page=1&per_page=10>; rel="first",` +
				`<https://canvas.example.edu/api/v1/courses?page=12&per_page=10>; rel="last"`,
			expected: "https://canvas.example.edu/api/v1/courses?page=3&per_page=10",
		},
		{
			name:     "final page has no next",
			link:     `<https://canvas.example.edu/api/v1/courses?page=12>; rel="current",<https://canvas.example.edu/api/v1/courses?page=1>; rel="first"`,
			expected: "",
		},
		{
			name:     "bookmark cursor stays opaque",
			link:     `<https://canvas.example.edu/api/v1/courses?page=bookmark:WzEwNF0>; rel="next"`,
			expected: "https://canvas.example.edu/api/v1/courses?page=bookmark:WzEwNF0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.link != "" {
				h.Set("Link", tt.link)
			}

			assert.Equal(t, tt.expected, nextCursor(h))
		})
	}
}

func TestListCourses_SurfacesNextCursor(t *testing.T) {
	resp := jsonResponse(http.StatusOK, `[{"id":1}]`)
	resp.Header.Set("Link", `<https://canvas.example.edu/api/v1/courses?page=2>; rel="next"`)

	ft := &fakeTransport{resp: resp}
	svc := newTestService(t, ft, testConfig())

	_, next, err := svc.ListCourses(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://canvas.example.edu/api/v1/courses?page=2", next)
}
