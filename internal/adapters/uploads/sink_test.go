package uploads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskSink_WritesUnderOriginalName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	s := NewDiskSink(dir)

	if err := s.Save(context.Background(), "paris.jpg", strings.NewReader("first"), 5, "image/jpeg"); err != nil {
		t.Fatalf("save: %v", err)
	}
	// same name overwrites silently
	if err := s.Save(context.Background(), "paris.jpg", strings.NewReader("second"), 6, "image/jpeg"); err != nil {
		t.Fatalf("save again: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "paris.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("want overwritten content, got %q", b)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"tokyo.png", "tokyo.png", false},
		{"../../etc/passwd", "passwd", false},
		{"dir/sub/a b.jpg", "a b.jpg", false},
		{"", "", true},
		{"..", "", true},
	}
	for _, tt := range tests {
		got, err := cleanName(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrBadName) {
				t.Fatalf("cleanName(%q): want ErrBadName, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("cleanName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantSecure   bool
		wantErr      bool
	}{
		{"minio:9000", "minio:9000", false, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://minio:9000", "minio:9000", true, false},
		{"http://minio:9000/foo", "", false, true},
		{"", "", false, true},
	}

	for _, tt := range tests {
		ep, secure, err := normaliseEndpoint(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for input %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if ep != tt.wantEndpoint || secure != tt.wantSecure {
			t.Fatalf("normaliseEndpoint(%q) = (%q,%v), want (%q,%v)", tt.in, ep, secure, tt.wantEndpoint, tt.wantSecure)
		}
	}
}

func TestNewMinIOSink_IncompleteConfig(t *testing.T) {
	if _, err := NewMinIOSink(context.Background(), "minio:9000", "", "secret", "bucket"); err == nil {
		t.Fatalf("expected error for missing access key")
	}
}
