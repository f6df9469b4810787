// Package gzippedhttp transparently inflates gzip request bodies and deflates
// JSON and HTML responses for clients that accept gzip.
package gzippedhttp

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var compressibleContentTypes = []string{
	"application/json",
	"text/html",
}

var writerPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

type gzipReadCloser struct {
	body io.ReadCloser
	zr   *gzip.Reader
}

func newGzipReadCloser(body io.ReadCloser) (*gzipReadCloser, error) {
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}

	return &gzipReadCloser{body: body, zr: zr}, nil
}

func (c *gzipReadCloser) Read(p []byte) (int, error) {
	return c.zr.Read(p)
}

func (c *gzipReadCloser) Close() error {
	if err := c.zr.Close(); err != nil {
		return err
	}
	return c.body.Close()
}

// responseWriter decides on the first WriteHeader/Write whether the body is
// worth compressing, judging by status and Content-Type.
type responseWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	decided     bool
	compressing bool
}

func isCompressible(contentType string) bool {
	for _, candidate := range compressibleContentTypes {
		if strings.HasPrefix(contentType, candidate) {
			return true
		}
	}
	return false
}

func (w *responseWriter) decide(statusCode int) {
	if w.decided {
		return
	}
	w.decided = true

	header := w.Header()
	if statusCode >= http.StatusMultipleChoices || statusCode == http.StatusNoContent ||
		header.Get("Content-Encoding") != "" || !isCompressible(header.Get("Content-Type")) {
		return
	}

	header.Set("Content-Encoding", "gzip")
	header.Add("Vary", "Accept-Encoding")
	header.Del("Content-Length")

	w.zw = writerPool.Get().(*gzip.Writer)
	w.zw.Reset(w.ResponseWriter)
	w.compressing = true
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.decide(statusCode)
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if !w.decided {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(p))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.compressing {
		return w.zw.Write(p)
	}
	return w.ResponseWriter.Write(p)
}

func (w *responseWriter) close() error {
	if !w.compressing {
		return nil
	}
	err := w.zw.Close()
	writerPool.Put(w.zw)
	return err
}

// CompressResponse gzips JSON and HTML responses when the client sends
// "Accept-Encoding: gzip".
func CompressResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(response, request)
			return
		}

		writer := &responseWriter{ResponseWriter: response}
		defer writer.close()

		next.ServeHTTP(writer, request)
	})
}

// DecompressRequest replaces a gzip-encoded request body with its inflated
// form. A body that is not valid gzip is answered with 400.
func DecompressRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(response, request)
			return
		}

		body, err := newGzipReadCloser(request.Body)
		if err != nil {
			response.WriteHeader(http.StatusBadRequest)
			return
		}
		defer body.Close()

		request.Body = body
		request.Header.Del("Content-Encoding")
		request.ContentLength = -1

		next.ServeHTTP(response, request)
	})
}
