package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestAccepts(t *testing.T) {
	cases := []struct {
		header, enc string
		want        bool
	}{
		{"gzip, deflate", "gzip", true},
		{"gzip;q=0", "gzip", false},
		{"GZIP;q=0.5", "gzip", true},
		{"*", "zstd", true},
		{"*;q=0, gzip", "zstd", false},
		{"zstd;q=0, *", "zstd", false},
		{"identity", "gzip", false},
		{"", "gzip", false},
	}
	for _, c := range cases {
		if got := accepts(c.header, c.enc); got != c.want {
			t.Fatalf("accepts(%q, %q) = %v, want %v", c.header, c.enc, got, c.want)
		}
	}
}

var payload = strings.Repeat(`{"values":[0.1,0.2,0.3]}`, 64)

func textHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, payload)
}

func TestCompressionGzipAndZstd(t *testing.T) {
	h := Compression(http.HandlerFunc(textHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("want gzip, got %q", rec.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	if b, _ := io.ReadAll(zr); string(b) != payload {
		t.Fatalf("gzip round trip mismatch")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, zstd")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "zstd" {
		t.Fatalf("zstd should be preferred, got %q", rec.Header().Get("Content-Encoding"))
	}
	dec, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()
	if b, _ := io.ReadAll(dec); string(b) != payload {
		t.Fatalf("zstd round trip mismatch")
	}
}

func TestCompressionSkips(t *testing.T) {
	h := NewCompression(CompressConfig{GzipLevel: gzip.BestSpeed, ZstdLevel: zstd.SpeedDefault})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Content-Encoding") != "" || rec.Body.Len() != 0 {
		t.Fatalf("204 must not be compressed: %d %q %d", rec.Code, rec.Header().Get("Content-Encoding"), rec.Body.Len())
	}

	plain := Compression(http.HandlerFunc(textHandler))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip;q=0")
	rec = httptest.NewRecorder()
	plain.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "" || rec.Body.String() != payload {
		t.Fatalf("q=0 must disable compression")
	}
}

func TestRecoverAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(AccessLog(log)(Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/x", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("panic should map to 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"level":"fatal"`) {
		t.Fatalf("error body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
	out := buf.String()
	for _, want := range []string{`"msg":"http.panic"`, `"panic":"boom"`, `"msg":"http.access"`, `"status":500`, `"req_id":"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %s:\n%s", want, out)
		}
	}
}

func TestRecoverRethrowsAbort(t *testing.T) {
	h := Recover(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("want ErrAbortHandler, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestReqIdNumPart(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetReqIdNumPart(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got == "" || strings.Contains(got, "-") {
		t.Fatalf("num part: %q", got)
	}
}
