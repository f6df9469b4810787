package gzippedhttp

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[{"id":1}]`))
	})
}

func gunzip(t *testing.T, body []byte) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(raw)
}

func TestCompressResponse(t *testing.T) {
	t.Run("compresses json for gzip clients", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rec := httptest.NewRecorder()

		CompressResponse(jsonHandler(http.StatusOK)).ServeHTTP(rec, req)

		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		assert.Equal(t, `[{"id":1}]`, gunzip(t, rec.Body.Bytes()))
	})

	t.Run("leaves plain clients alone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()

		CompressResponse(jsonHandler(http.StatusOK)).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, `[{"id":1}]`, rec.Body.String())
	})

	t.Run("does not compress errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()

		CompressResponse(jsonHandler(http.StatusBadRequest)).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, `[{"id":1}]`, rec.Body.String())
	})

	t.Run("does not compress other content types", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()

		CompressResponse(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		})).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
	})
}

func TestDecompressRequest(t *testing.T) {
	var echoed string
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		echoed = string(raw)
		w.WriteHeader(http.StatusCreated)
	})

	t.Run("inflates gzip bodies", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(`{"name":"Ann"}`))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/users", &buf)
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()

		DecompressRequest(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, `{"name":"Ann"}`, echoed)
	})

	t.Run("rejects broken gzip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()

		DecompressRequest(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
