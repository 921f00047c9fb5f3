// Package compress negotiates brotli or gzip response compression.
package compress

import (
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/kakascoaching/site/internal/services/site/platform/httpx"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"

	// MinSize is the smallest declared body worth compressing.
	MinSize = 512
)

// Middleware compresses text responses for clients that accept br or gzip.
// Media, archives and partial content pass through untouched.
func Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")
			encoding := Negotiate(r.Header.Get("Accept-Encoding"))
			if encoding == "" || r.Method == http.MethodHead || r.Header.Get("Range") != "" {
				next.ServeHTTP(w, r)
				return
			}
			cw := &writer{ResponseWriter: w, encoding: encoding}
			defer cw.close()
			next.ServeHTTP(cw, r)
		})
	}
}

// Negotiate picks br over gzip from an Accept-Encoding header. Codings
// with q=0 are refused.
func Negotiate(header string) string {
	accepted := map[string]bool{}
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		accepted[name] = qualityOf(params) > 0
	}
	switch {
	case accepted[encodingBrotli]:
		return encodingBrotli
	case accepted[encodingGzip]:
		return encodingGzip
	case accepted["*"]:
		return encodingBrotli
	}
	return ""
}

func qualityOf(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || strings.TrimSpace(key) != "q" {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}

type writer struct {
	http.ResponseWriter
	encoding    string
	enc         io.WriteCloser
	wroteHeader bool
}

func (w *writer) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if compressible(status, w.Header()) {
		h := w.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", w.encoding)
		switch w.encoding {
		case encodingBrotli:
			w.enc = brotli.NewWriterLevel(w.ResponseWriter, brotli.DefaultCompression)
		default:
			w.enc, _ = gzip.NewWriterLevel(w.ResponseWriter, gzip.DefaultCompression)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *writer) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(p))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.enc != nil {
		return w.enc.Write(p)
	}
	return w.ResponseWriter.Write(p)
}

// Flush flushes the encoder and the wrapped writer.
func (w *writer) Flush() {
	if flusher, ok := w.enc.(interface{ Flush() error }); ok {
		_ = flusher.Flush()
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *writer) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *writer) close() {
	if w.enc != nil {
		_ = w.enc.Close()
	}
}

func compressible(status int, h http.Header) bool {
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified || status == http.StatusPartialContent {
		return false
	}
	if h.Get("Content-Encoding") != "" || h.Get("Content-Range") != "" {
		return false
	}
	if length := h.Get("Content-Length"); length != "" {
		if n, err := strconv.Atoi(length); err == nil && n < MinSize {
			return false
		}
	}
	contentType := strings.ToLower(h.Get("Content-Type"))
	switch {
	case strings.HasPrefix(contentType, "text/"),
		strings.HasPrefix(contentType, "application/json"),
		strings.HasPrefix(contentType, "application/javascript"),
		strings.HasPrefix(contentType, "image/svg+xml"):
		return true
	}
	return false
}
