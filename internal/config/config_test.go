package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// neutralize ambient environment so defaults are actually exercised
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "TABLE_PREFIX", "DEBUG",
		"UPLOAD_PARSER_SERVICE_ENABLED", "UPLOAD_PARSER_SERVICE_TIMEOUT",
		"UPLOAD_MAX_FILE_SIZE", "UPLOAD_MAX_PROJECT_SIZE", "UPLOAD_ALLOWED_EXTENSIONS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q, want dev", cfg.Environment)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("TablePrefix = %q, want dev_", cfg.TablePrefix)
	}
	if !cfg.Upload.ParserEnabled {
		t.Error("ParserEnabled = false, want true")
	}
	if cfg.Upload.ParserTimeout != 30*time.Second {
		t.Errorf("ParserTimeout = %v, want 30s", cfg.Upload.ParserTimeout)
	}
	if cfg.Upload.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want 50", cfg.Upload.MaxFileSizeMB)
	}
	if cfg.Upload.MaxProjectSizeMB != 500 {
		t.Errorf("MaxProjectSizeMB = %d, want 500", cfg.Upload.MaxProjectSizeMB)
	}
	if cfg.Upload.AllowedExtensions != nil {
		t.Errorf("AllowedExtensions = %v, want nil for registry defaults", cfg.Upload.AllowedExtensions)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_PARSER_SERVICE_ENABLED", "false")
	t.Setenv("UPLOAD_PARSER_SERVICE_TIMEOUT", "5")
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", ".cbl, .cpy ,.jcl,")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.TablePrefix != "prod_" {
		t.Errorf("TablePrefix = %q, want prod_", cfg.TablePrefix)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false in prod")
	}
	if cfg.Upload.ParserEnabled {
		t.Error("ParserEnabled = true, want false")
	}
	if cfg.Upload.ParserTimeout != 5*time.Second {
		t.Errorf("ParserTimeout = %v, want 5s", cfg.Upload.ParserTimeout)
	}

	want := []string{".cbl", ".cpy", ".jcl"}
	if len(cfg.Upload.AllowedExtensions) != len(want) {
		t.Fatalf("AllowedExtensions = %v, want %v", cfg.Upload.AllowedExtensions, want)
	}
	for i, ext := range want {
		if cfg.Upload.AllowedExtensions[i] != ext {
			t.Errorf("AllowedExtensions[%d] = %q, want %q", i, cfg.Upload.AllowedExtensions[i], ext)
		}
	}
}

func TestTablePrefixOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "custom_")

	if cfg := Load(); cfg.TablePrefix != "custom_" {
		t.Errorf("TablePrefix = %q, want custom_", cfg.TablePrefix)
	}
}

func TestUploadConfigByteCaps(t *testing.T) {
	u := UploadConfig{MaxFileSizeMB: 50, MaxProjectSizeMB: 500}

	if got := u.MaxFileBytes(); got != 50*1024*1024 {
		t.Errorf("MaxFileBytes() = %d, want %d", got, 50*1024*1024)
	}
	if got := u.MaxProjectBytes(); got != 500*1024*1024 {
		t.Errorf("MaxProjectBytes() = %d, want %d", got, 500*1024*1024)
	}
}

func TestGetEnvIntRejectsBadValues(t *testing.T) {
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "not-a-number")
	if cfg := Load(); cfg.Upload.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want default 50", cfg.Upload.MaxFileSizeMB)
	}

	t.Setenv("UPLOAD_MAX_FILE_SIZE", "-3")
	if cfg := Load(); cfg.Upload.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want default 50", cfg.Upload.MaxFileSizeMB)
	}
}
