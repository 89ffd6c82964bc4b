package config

import (
	"strings"
	"testing"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BLOG_SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("BLOG_STORAGE_BUCKET", "blog-images")
	t.Setenv("BLOG_SESSION_SECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:5003" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.Path != "data/blog.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Storage.Bucket != "blog-images" || cfg.Storage.KeyPrefix != "post-images" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if !cfg.Session.Secure || cfg.Session.MaxAge != 30*24*60*60 {
		t.Errorf("session = %+v", cfg.Session)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate returned error: %v", err)
	}
}

func TestValidateRequiresSessionSecret(t *testing.T) {
	var cfg Config
	cfg.Database.Path = "blog.db"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing session secret")
	}
	cfg.Session.Secret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short session secret")
	}
}
