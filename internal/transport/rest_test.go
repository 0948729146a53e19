package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/firesidecapital/fireside-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestTransport_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/bills", r.URL.Path)
		assert.Equal(t, "eq.true", r.URL.Query().Get("is_active"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Rent","amount":1450}]`))
	}))
	defer server.Close()

	transport := NewRestTransport(&Options{
		BaseURL: server.URL,
		APIKey:  "anon-key",
	})

	query := url.Values{}
	query.Set("is_active", "eq.true")

	var rows []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}
	err := transport.Get(context.Background(), "bills", query, &rows)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rent", rows[0].Name)
	assert.Equal(t, 1450.0, rows[0].Amount)
}

func TestRestTransport_Get_UsesSessionToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-jwt", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	transport := NewRestTransport(&Options{
		BaseURL: server.URL,
		APIKey:  "anon-key",
	})
	transport.SetAuth("user-jwt")

	err := transport.Get(context.Background(), "bills", nil, nil)
	require.NoError(t, err)
}

func TestRestTransport_Get_RequiresAPIKey(t *testing.T) {
	transport := NewRestTransport(&Options{BaseURL: "http://localhost"})

	err := transport.Get(context.Background(), "bills", nil, nil)

	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestHandleHTTPError_ServerError_IncludesResponseBody(t *testing.T) {
	transport := &RestTransport{}

	tests := []struct {
		name          string
		statusCode    int
		responseBody  []byte
		expectedInMsg string
	}{
		{
			name:          "525 SSL Handshake Failed with HTML body",
			statusCode:    525,
			responseBody:  []byte(`<html><body>SSL Handshake Failed</body></html>`),
			expectedInMsg: "525",
		},
		{
			name:          "500 with PostgREST error message",
			statusCode:    500,
			responseBody:  []byte(`{"message": "database connection failed", "code": "XX000"}`),
			expectedInMsg: "database connection failed",
		},
		{
			name:          "502 Bad Gateway with empty body",
			statusCode:    502,
			responseBody:  []byte{},
			expectedInMsg: "502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transport.handleHTTPError(tt.statusCode, tt.responseBody)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedInMsg)
			assert.ErrorIs(t, err, types.ErrServerError)
		})
	}
}

func TestHandleHTTPError_StatusMapping(t *testing.T) {
	transport := &RestTransport{}

	tests := []struct {
		statusCode int
		expected   error
	}{
		{http.StatusUnauthorized, types.ErrNotAuthenticated},
		{http.StatusForbidden, types.ErrNotAuthenticated},
		{http.StatusNotFound, types.ErrNotFound},
		{http.StatusTooManyRequests, types.ErrRateLimited},
		{http.StatusGatewayTimeout, types.ErrTimeout},
	}

	for _, tt := range tests {
		err := transport.handleHTTPError(tt.statusCode, nil)
		assert.ErrorIs(t, err, tt.expected)
	}
}
