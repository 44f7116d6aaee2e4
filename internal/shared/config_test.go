package shared_test

import (
	"testing"
	"time"

	"travelguide/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STORE_BACKEND", "ACCESS_TOKEN", "SEED_DATA", "CACHE_TTL_SECONDS", "UPLOAD_DIR", "UPLOAD_BACKEND"} {
		t.Setenv(k, "")
	}
	c := shared.Load()

	if c.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.StoreBackend != shared.StoreMemory || c.UploadBackend != shared.UploadDisk {
		t.Fatalf("unexpected backends: %q %q", c.StoreBackend, c.UploadBackend)
	}
	if c.AccessToken != "your_secret_token" || !c.UsesDefaultToken() || !c.SeedData {
		t.Fatalf("unexpected gate/seed defaults: %+v", c)
	}
	if c.UploadDir != "public/images" || c.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8081")
	t.Setenv("STORE_BACKEND", "MySQL")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("ACCESS_TOKEN", "s3cret")

	c := shared.Load()
	if c.HTTPAddr != ":8081" || c.StoreBackend != shared.StoreMySQL || c.SeedData {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.UsesDefaultToken() {
		t.Fatalf("custom ACCESS_TOKEN reported as default")
	}
	if len(c.Ignored) != 1 || c.Ignored[0] != "REDIS_DB" {
		t.Fatalf("ignored settings = %v", c.Ignored)
	}
	if c.CacheTTL != 30*time.Second || c.RedisDB != 0 {
		t.Fatalf("numeric parsing: ttl=%s db=%d", c.CacheTTL, c.RedisDB)
	}
}
