package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/modlayer/pkg/auth"
)

func TestHeaderAuth(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		expect  map[string]string
	}{
		{
			name:    "single header",
			headers: map[string]string{"X-API-Key": "test-key"},
			expect:  map[string]string{"X-Api-Key": "test-key"},
		},
		{
			name: "multiple headers",
			headers: map[string]string{
				"X-API-Key":   "test-key",
				"X-Client-ID": "client-123",
			},
			expect: map[string]string{
				"X-Api-Key":   "test-key",
				"X-Client-Id": "client-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "https://api.github.com/repos", nil)
			headerAuth := auth.HeaderAuth{Headers: tt.headers}

			require.NoError(t, headerAuth.Apply(req))
			for k, v := range tt.expect {
				assert.Equal(t, v, req.Header.Get(k))
			}
			assert.Equal(t, auth.HeaderAuthType, headerAuth.Type())
		})
	}
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		expect string
	}{
		{name: "valid token", token: "ghp_123", expect: "Bearer ghp_123"},
		{name: "empty token", token: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "https://api.github.com/repos", nil)
			bearerAuth := auth.BearerAuth{Token: tt.token}

			require.NoError(t, bearerAuth.Apply(req))
			assert.Equal(t, tt.expect, req.Header.Get("Authorization"))
			assert.Equal(t, auth.BearerAuthType, bearerAuth.Type())
		})
	}
}

func TestHostScoped(t *testing.T) {
	scoped := auth.ForHost("api.github.com", auth.BearerAuth{Token: "secret"})

	tests := []struct {
		url    string
		expect string
	}{
		{"https://api.github.com/repos/SpectrumQT/XXMI-Libs-Package/releases/latest", "Bearer secret"},
		{"https://API.GITHUB.COM/repos", "Bearer secret"},
		{"https://objects.githubusercontent.com/asset.zip", ""},
		{"https://github.com/SpectrumQT/XXMI-Libs-Package/releases/download/v1/a.zip", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			require.NoError(t, scoped.Apply(req))
			assert.Equal(t, tt.expect, req.Header.Get("Authorization"))
		})
	}
	assert.Equal(t, auth.BearerAuthType, scoped.Type())
}

func TestHostScoped_NilInner(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://api.github.com", nil)
	scoped := auth.HostScoped{Hosts: []string{"api.github.com"}}
	require.NoError(t, scoped.Apply(req))
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, auth.Type(""), scoped.Type())
}
