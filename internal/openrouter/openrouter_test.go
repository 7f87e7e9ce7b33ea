package openrouter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truefrontier/openrouter-launch/internal/httpclient"
)

const samplePayload = `{"data":[
	{"id":"openai/gpt-4o","pricing":{"prompt":"0.0000025","completion":"0.00001"}},
	{"id":"anthropic/claude-sonnet-4","pricing":{"prompt":"0.000003","completion":"0.000015"}},
	{"id":"x/y:free","pricing":{"prompt":"0","completion":"0"}},
	{"id":"meta/no-completion","pricing":{"prompt":"0.000001"}},
	{"id":"meta/no-pricing"},
	{"pricing":{"prompt":"0.000001","completion":"0.000001"}},
	{"id":"openrouter/auto","pricing":{"prompt":"-1","completion":"-1"}},
	{"id":"bad/price","pricing":{"prompt":"abc","completion":"0.000001"}},
	{"id":"numeric/price","pricing":{"prompt":0.0000002,"completion":0.0000006}}
]}`

func TestParseModels(t *testing.T) {
	lines, err := ParseModels([]byte(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"anthropic/claude-sonnet-4|3|15",
		"numeric/price|0.19999999999999998|0.6",
		"openai/gpt-4o|2.5|10",
	}, lines)
}

func TestParseModelsSkipsOddlyTypedEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"bool price", `{"id":"weird/bool","pricing":{"prompt":true,"completion":"0.000001"}}`},
		{"object price", `{"id":"weird/object","pricing":{"prompt":"0.000001","completion":{}}}`},
		{"array price", `{"id":"weird/array","pricing":{"prompt":[1],"completion":"0.000001"}}`},
		{"string pricing", `{"id":"weird/pricing","pricing":"free"}`},
		{"numeric id", `{"id":42,"pricing":{"prompt":"0.000001","completion":"0.000001"}}`},
		{"not an object", `"openai/gpt-4o"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"data":[{"id":"openai/gpt-4o","pricing":{"prompt":"0.0000025","completion":"0.00001"}},` + tt.entry + `]}`
			lines, err := ParseModels([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, []string{"openai/gpt-4o|2.5|10"}, lines)
		})
	}
}

func TestParseModelsFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"data not a list", `{"data":{"id":"a/b"}}`},
		{"data missing", `{"models":[]}`},
		{"empty list", `{"data":[]}`},
		{"only free models", `{"data":[{"id":"x/y:free","pricing":{"prompt":"0","completion":"0"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModels([]byte(tt.body))
			assert.Error(t, err)
		})
	}

	_, err := ParseModels([]byte(`{"data":[]}`))
	assert.True(t, errors.Is(err, ErrNoModels))
}

func TestFetchModels(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/v1/models", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1", "", httpclient.New(httpclient.WithHTTPClient(srv.Client())))
	lines, err := c.FetchModels(context.Background())
	require.NoError(t, err)
	assert.Len(t, lines, 3)
	assert.Equal(t, 1, calls)
}

func TestFetchModelsNon200IsSingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New("", srv.URL, httpclient.New(httpclient.WithHTTPClient(srv.Client())))
	_, err := c.FetchModels(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchModelsRejectsNon200Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New("", srv.URL, httpclient.New(httpclient.WithHTTPClient(srv.Client())))
	_, err := c.FetchModels(context.Background())
	assert.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/key", r.URL.Path)
		switch r.Header.Get("Authorization") {
		case "Bearer sk-or-good":
			_, _ = w.Write([]byte(`{"data":{"label":"test"}}`))
		case "Bearer sk-or-bad":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "", httpclient.New(httpclient.WithHTTPClient(srv.Client())))
	ctx := context.Background()

	assert.NoError(t, c.ValidateKey(ctx, "sk-or-good"))
	assert.ErrorIs(t, c.ValidateKey(ctx, "sk-or-bad"), ErrInvalidKey)

	err := c.ValidateKey(ctx, "sk-or-other")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidKey)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestValidKeyFormat(t *testing.T) {
	assert.True(t, ValidKeyFormat("sk-or-v1-abc"))
	assert.False(t, ValidKeyFormat("sk-ant-abc"))
	assert.False(t, ValidKeyFormat(""))
}
