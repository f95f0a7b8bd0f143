package favicon_test

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmdeck/internal/favicon"
	"github.com/nikbrunner/bmdeck/internal/storage"
)

func TestResolver_URL(t *testing.T) {
	tests := []struct {
		name string
		r    favicon.Resolver
		page string
		want string
	}{
		{
			name: "default params",
			r:    favicon.Resolver{Endpoint: "/_favicon/", Size: 32},
			page: "https://github.com",
			want: "/_favicon/?pageUrl=https%3A%2F%2Fgithub.com&size=32",
		},
		{
			name: "query in page url is escaped",
			r:    favicon.Resolver{Endpoint: "/_favicon/", Size: 16},
			page: "https://example.com/?q=a&b=c",
			want: "/_favicon/?pageUrl=https%3A%2F%2Fexample.com%2F%3Fq%3Da%26b%3Dc&size=16",
		},
		{
			name: "disabled",
			r:    favicon.Resolver{Size: 32},
			page: "https://github.com",
			want: "",
		},
		{
			name: "empty page",
			r:    favicon.Resolver{Endpoint: "/_favicon/", Size: 32},
			page: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Check(t, is.Equal(tt.r.URL(tt.page), tt.want))
		})
	}
}

func TestNew_FromDefaultConfig(t *testing.T) {
	r := favicon.New(storage.DefaultConfig().Favicon)
	assert.Check(t, is.Equal(r.URL("https://go.dev"),
		"https://www.google.com/s2/favicons?domain_url=https%3A%2F%2Fgo.dev&sz=32"))
}
