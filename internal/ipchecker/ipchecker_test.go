package ipchecker

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New("10.0.0.0/33")
	assert.Error(t, err)

	checker, err := New("")
	require.NoError(t, err)
	assert.False(t, checker.Check(net.ParseIP("127.0.0.1")), "no subnet trusts nobody")
}

func TestGetClientIP(t *testing.T) {
	checker, err := New("192.168.1.0/24")
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "real ip header", headers: map[string]string{"X-Real-IP": "192.168.1.10"}, remote: "10.0.0.1:1234", want: "192.168.1.10"},
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "192.168.1.11, 10.0.0.2"}, remote: "10.0.0.1:1234", want: "192.168.1.11"},
		{name: "remote addr", remote: "10.0.0.1:1234", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/internal/stats", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			ip, err := checker.GetClientIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ip.String())
		})
	}
}

func TestMiddleware(t *testing.T) {
	checker, err := New("192.168.1.0/24")
	require.NoError(t, err)

	handler := checker.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/internal/stats", nil)
	req.Header.Set("X-Real-IP", "192.168.1.20")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/internal/stats", nil)
	req.Header.Set("X-Real-IP", "172.16.0.1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
