package api

import (
	"net/http"
	"strings"
	"time"

	"provisionhub/logger"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5/middleware"
)

// brotliResponseWriter routes the response body through a brotli encoder.
// Content-Encoding is decided when the status is written and the encoder is
// created on the first body write, so bodiless statuses pass through untouched.
type brotliResponseWriter struct {
	http.ResponseWriter
	level       int
	bw          *brotli.Writer
	wroteHeader bool
	encode      bool
}

func (w *brotliResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if bodyAllowed(status) {
		w.encode = true
		w.Header().Set("Content-Encoding", "br")
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *brotliResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if !w.encode {
		return w.ResponseWriter.Write(b)
	}
	if w.bw == nil {
		w.bw = brotli.NewWriterLevel(w.ResponseWriter, w.level)
	}
	return w.bw.Write(b)
}

// Close finishes the brotli stream. An encoded status with no body still gets
// a valid empty stream; nothing is written when the status was never sent.
func (w *brotliResponseWriter) Close() error {
	if !w.encode {
		return nil
	}
	if w.bw == nil {
		w.bw = brotli.NewWriterLevel(w.ResponseWriter, w.level)
	}
	return w.bw.Close()
}

func bodyAllowed(status int) bool {
	return status >= http.StatusOK && status != http.StatusNoContent && status != http.StatusNotModified
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.SplitN(enc, ";", 2)[0]) == "br" {
			return true
		}
	}
	return false
}

// BrotliCompress encodes responses with brotli when the client advertises "br".
func BrotliCompress(level int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")
			if r.Method == http.MethodHead || !acceptsBrotli(r) {
				next.ServeHTTP(w, r)
				return
			}
			bw := &brotliResponseWriter{ResponseWriter: w, level: level}
			// A panicking handler skips Close so the recoverer can still write its 500.
			next.ServeHTTP(bw, r)
			if err := bw.Close(); err != nil {
				logger.Error("BrotliCompress: closing encoder for %s: %v", r.URL.Path, err)
			}
		})
	}
}

// RequestLogger writes one debug line per request through the application logger.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger.Debug("[%s] %s %s -> %d (%d bytes) in %s",
			middleware.GetReqID(r.Context()), r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start))
	})
}
