package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/config"
)

// Without a Redis client both middlewares must degrade to transparent
// pass-throughs rather than fail.
func TestNilRedisDegradesToPassthrough(t *testing.T) {
	e := echo.New()

	handlers := []echo.MiddlewareFunc{
		NewTokenBucket(config.LoadRateLimitConfig(), nil),
		NewRedisCache(config.LoadCacheConfig(), nil),
	}
	for i, mw := range handlers {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := mw(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
		if err := h(c); err != nil {
			t.Fatalf("middleware %d returned error: %v", i, err)
		}
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("middleware %d altered the response: %d %q", i, rec.Code, rec.Body.String())
		}
	}
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Set("X-Request-Id", "abc123")
	body := []byte(`[{"id":1}]`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" || gotHdr.Get("X-Request-Id") != "abc123" {
		t.Errorf("headers = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	if _, _, _, ok := decodePayload(nil); ok {
		t.Error("nil payload accepted")
	}
	if _, _, _, ok := decodePayload([]byte{0, 0}); ok {
		t.Error("short payload accepted")
	}
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	e := echo.New()
	cfg := config.LoadCacheConfig()

	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}
	a := cacheKey(cfg, newCtx("/categories?x=1"))
	b := cacheKey(cfg, newCtx("/categories?x=2"))
	if a == b {
		t.Error("different queries produced the same cache key")
	}
	if a != cacheKey(cfg, newCtx("/categories?x=1")) {
		t.Error("cache key not deterministic")
	}
}
