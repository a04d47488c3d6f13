package watson

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, endpoint string, auth AuthScheme, creds Credentials) *Client {
	t.Helper()
	c, err := NewClient(Config{
		Service:     ServiceLanguageTranslation,
		Endpoint:    endpoint,
		Credentials: creds,
		Auth:        auth,
	}, logr.Discard())
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "https://example.com"}, logr.Discard())
	assert.Error(t, err)

	_, err = NewClient(Config{Service: "x", Endpoint: "not a url"}, logr.Discard())
	assert.Error(t, err)

	_, err = NewClient(Config{Service: "x", Endpoint: "/relative/path"}, logr.Discard())
	assert.Error(t, err)

	c, err := NewClient(Config{Service: "x", Endpoint: "https://example.com/api/"}, logr.Discard())
	require.NoError(t, err)
	assert.Equal(t, "x", c.Service())
	assert.NotNil(t, c.httpClient)
}

func TestClient_URL(t *testing.T) {
	c := newTestClient(t, "https://gateway.example.com/language-translation/api/", BasicAuth, Credentials{})

	u := c.URL("/v2/translate", nil)
	assert.Equal(t, "https://gateway.example.com/language-translation/api/v2/translate", u.String())

	u = c.URL("v1/synthesize", url.Values{"voice": {"en-US_LisaVoice"}})
	assert.Equal(t, "https://gateway.example.com/language-translation/api/v1/synthesize?voice=en-US_LisaVoice", u.String())
}

func TestClient_NewRequest_BasicAuth(t *testing.T) {
	c := newTestClient(t, "https://example.com/api", BasicAuth, Credentials{Username: "user", Password: "pass"})

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/v1/models", nil, nil)
	require.NoError(t, err)

	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)
	assert.NotEmpty(t, req.Header.Get(TransactionHeader))
	assert.Empty(t, req.URL.Query().Get("api_key"))
}

func TestClient_NewRequest_APIKey(t *testing.T) {
	c := newTestClient(t, "https://example.com/api", APIKeyQuery, Credentials{APIKey: "secret"})

	req, err := c.NewRequest(context.Background(), http.MethodPost, "/v3/detect_faces", url.Values{"version": {"2016-05-20"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "secret", req.URL.Query().Get("api_key"))
	assert.Equal(t, "2016-05-20", req.URL.Query().Get("version"))
	_, _, ok := req.BasicAuth()
	assert.False(t, ok)
}

func TestClient_NewRequest_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		auth  AuthScheme
		creds Credentials
	}{
		{"basic without password", BasicAuth, Credentials{Username: "user"}},
		{"basic empty", BasicAuth, Credentials{}},
		{"api key empty", APIKeyQuery, Credentials{Username: "user", Password: "pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "https://example.com/api", tt.auth, tt.creds)
			_, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
			require.Error(t, err)

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "missing_credentials", se.Code)
			assert.True(t, IsUnauthorized(err))
		})
	}
}

func TestClient_AuthHeader(t *testing.T) {
	c := newTestClient(t, "https://example.com/api", BasicAuth, Credentials{Username: "user", Password: "pass"})

	h := c.AuthHeader()
	req := &http.Request{Header: h}
	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)
	assert.NotEmpty(t, h.Get(TransactionHeader))
}

func TestClient_DoJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"value"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"echo":"ok"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, BasicAuth, Credentials{Username: "u", Password: "p"})
	req, err := c.NewJSONRequest(context.Background(), http.MethodPost, "/echo", nil, map[string]string{"name": "value"})
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	require.NoError(t, c.DoJSON(req, &out))
	assert.Equal(t, "ok", out.Echo)
}

func TestClient_DoJSON_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, BasicAuth, Credentials{Username: "u", Password: "p"})
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)

	var out map[string]interface{}
	err = c.DoJSON(req, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestClient_Do_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401,"error":"Not Authorized"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, BasicAuth, Credentials{Username: "u", Password: "p"})
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)

	_, err = c.Do(req)
	require.Error(t, err)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Not Authorized", se.Message)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "language_translation: Not Authorized (HTTP 401)", err.Error())
}

func TestClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	c := newTestClient(t, endpoint, BasicAuth, Credentials{Username: "u", Password: "p"})
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)

	_, err = c.Do(req)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "language_translation request failed"))
	assert.False(t, IsUnauthorized(err))
}

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{"string error", 400, `{"error":"Unable to find model","code":400}`, "Unable to find model", "bad_request"},
		{"nested error", 400, `{"images_processed":0,"error":{"code":400,"description":"Invalid image","error_id":"input_error"}}`, "Invalid image", "input_error"},
		{"status info", 403, `{"status":"ERROR","statusInfo":"invalid-api-key"}`, "invalid-api-key", "invalid-api-key"},
		{"description only", 404, `{"description":"Not here"}`, "Not here", "not_found"},
		{"plain text", 502, `Bad gateway from proxy`, "Bad gateway from proxy", "bad_gateway"},
		{"empty body", 503, ``, "Service Unavailable", "service_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := ParseErrorBody("svc", tt.status, []byte(tt.body))
			assert.Equal(t, tt.wantMessage, se.Message)
			assert.Equal(t, tt.wantCode, se.Code)
			assert.Equal(t, tt.status, se.StatusCode)
		})
	}
}

func TestServiceError_NoStatus(t *testing.T) {
	err := NewServiceError("speech_to_text", 0, "session_error", "Session timed out")
	assert.Equal(t, "speech_to_text: Session timed out", err.Error())
}
