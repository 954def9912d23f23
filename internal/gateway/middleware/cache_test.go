package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCacheMiddlewareNilRedisPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(CacheMiddleware(nil, DefaultCacheConfig()))
	app.Get("/product", func(c *fiber.Ctx) error {
		return c.SendString(`[{"id":1}]`)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/product", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `[{"id":1}]` {
		t.Errorf("body = %q", body)
	}
	if got := resp.Header.Get("X-Cache"); got != "" {
		t.Errorf("X-Cache = %q, want unset without Redis", got)
	}
}

func TestIsMethodCacheable(t *testing.T) {
	config := DefaultCacheConfig()

	tests := []struct {
		method string
		want   bool
	}{
		{"GET", true},
		{"HEAD", true},
		{"POST", false},
		{"PUT", false},
		{"DELETE", false},
	}

	for _, tt := range tests {
		if got := isMethodCacheable(tt.method, config.CacheableMethods); got != tt.want {
			t.Errorf("isMethodCacheable(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}

func TestIsStatusCacheable(t *testing.T) {
	config := DefaultCacheConfig()

	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{404, true},
		{201, false},
		{400, false},
		{500, false},
	}

	for _, tt := range tests {
		if got := isStatusCacheable(tt.status, config.CacheableStatus); got != tt.want {
			t.Errorf("isStatusCacheable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestGenerateCacheKeyDistinguishesRequests(t *testing.T) {
	app := fiber.New()

	keys := make(map[string]string)
	app.All("/*", func(c *fiber.Ctx) error {
		keys[c.Method()+" "+c.OriginalURL()] = generateCacheKey(c)
		return c.SendString("ok")
	})

	for _, req := range []struct{ method, target string }{
		{"GET", "/product"},
		{"GET", "/product/1"},
		{"GET", "/product?page=2"},
		{"HEAD", "/product"},
	} {
		if _, err := app.Test(httptest.NewRequest(req.method, req.target, nil)); err != nil {
			t.Fatalf("%s %s failed: %v", req.method, req.target, err)
		}
	}

	seen := make(map[string]string)
	for request, key := range keys {
		if prev, ok := seen[key]; ok {
			t.Errorf("requests %q and %q share cache key %q", prev, request, key)
		}
		seen[key] = request
	}
}
