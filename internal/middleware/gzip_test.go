package middleware

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

func TestWithGzip_Responses(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		expectGzip     bool
	}{
		{"gzip accepted", "gzip", true},
		{"gzip among others", "br, gzip;q=0.8", true},
		{"no gzip accepted", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"message":"success"}`))
			})

			req := httptest.NewRequest(http.MethodGet, "/bookies", nil)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)

			rec := httptest.NewRecorder()
			WithGzip(handler).ServeHTTP(rec, req)
			resp := rec.Result()
			defer resp.Body.Close()

			if !tt.expectGzip {
				assert.Empty(t, resp.Header.Get("Content-Encoding"))
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, `{"message":"success"}`, string(body))
				return
			}

			require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

			gr, err := gzip.NewReader(resp.Body)
			require.NoError(t, err)
			defer gr.Close()

			unzipped, err := io.ReadAll(gr)
			require.NoError(t, err)
			assert.Equal(t, `{"message":"success"}`, string(unzipped))
		})
	}
}

func TestWithGzip_Requests(t *testing.T) {
	t.Run("valid gzip request", func(t *testing.T) {
		var bodyBuf bytes.Buffer
		gzw := gzip.NewWriter(&bodyBuf)
		_, _ = gzw.Write([]byte(`{"code":"BC123"}`))
		gzw.Close()

		req := httptest.NewRequest(http.MethodPost, "/", &bodyBuf)
		req.Header.Set("Content-Encoding", "gzip")

		called := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Equal(t, `{"code":"BC123"}`, string(b))
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		WithGzip(handler).ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid gzip request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip data"))
		req.Header.Set("Content-Encoding", "gzip")

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called on invalid gzip")
		})

		rec := httptest.NewRecorder()
		WithGzip(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to decompress")
	})
}
