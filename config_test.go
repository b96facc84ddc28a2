package httpclient

import (
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestLoadConfigValid - Load valid.json, verify registry and built clients
// ---------------------------------------------------------------------------

func TestLoadConfigValid(t *testing.T) {
	reg, err := LoadConfig("testdata/valid.json")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "payments" || names[1] != "search" {
		t.Fatalf("Names() = %v, want [payments search]", names)
	}

	c := GetClient(reg, "payments")
	if c.BaseURL() != "https://payments.example.com" {
		t.Fatalf("BaseURL() = %q, want %q", c.BaseURL(), "https://payments.example.com")
	}

	if c.ConnectTimeout() != time.Second {
		t.Fatalf("ConnectTimeout() = %v, want 1s", c.ConnectTimeout())
	}

	if c.ReadTimeout() != 5*time.Second {
		t.Fatalf("ReadTimeout() = %v, want 5s", c.ReadTimeout())
	}

	if c.MaxRetries() != 4 {
		t.Fatalf("MaxRetries() = %d, want 4", c.MaxRetries())
	}

	if c.maxConnectTimeout != 10*time.Second {
		t.Fatalf("maxConnectTimeout = %v, want 10s", c.maxConnectTimeout)
	}

	if got := c.Headers()["Accept"]; got != "application/json" {
		t.Fatalf("Headers()[Accept] = %q, want application/json", got)
	}

	if c.requestIDHeader != "X-Request-ID" {
		t.Fatalf("requestIDHeader = %q, want X-Request-ID", c.requestIDHeader)
	}

	s := GetClient(reg, "search")
	if !s.elapsedCheck {
		t.Fatal("search client: elapsedCheck = false, want true")
	}

	if got := s.backoff.Next(0, time.Second); got != 1500*time.Millisecond {
		t.Fatalf("search backoff Next(0, 1s) = %v, want 1.5s", got)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	reg, err := LoadConfig("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	c := GetClient(reg, "payments")
	if c.MaxRetries() != 4 {
		t.Fatalf("MaxRetries() = %d, want 4", c.MaxRetries())
	}

	inv := GetClient(reg, "inventory")
	if got := inv.backoff.Next(0, time.Second); got != time.Second {
		t.Fatalf("constant backoff Next(0, 1s) = %v, want 1s", got)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("testdata/nonexistent.json")
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error for missing file")
	}

	if !strings.Contains(err.Error(), "httpclient: read config") {
		t.Fatalf("error = %q, want to contain %q", err.Error(), "httpclient: read config")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"testdata/invalid_json.json", "httpclient: parse config"},
		{"testdata/invalid_duration.json", "connect_timeout"},
		{"testdata/invalid_backoff.yaml", "unknown backoff strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want to contain %q", err.Error(), tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// BuildOptions / parseTimeoutBackoff
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }

func TestParseTimeoutBackoff(t *testing.T) {
	tests := []struct {
		name    string
		step    *string
		want    time.Duration
		wantErr bool
	}{
		{name: "doubling", want: 2 * time.Second},
		{name: "constant", want: time.Second},
		{name: "linear", step: strPtr("250ms"), want: 1250 * time.Millisecond},
		{name: "linear", wantErr: true},
		{name: "linear", step: strPtr("later"), wantErr: true},
		{name: "fibonacci", wantErr: true},
	}

	for _, tt := range tests {
		b, err := parseTimeoutBackoff(strPtr(tt.name), tt.step)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseTimeoutBackoff(%q) error = nil, want error", tt.name)
			}

			continue
		}

		if err != nil {
			t.Fatalf("parseTimeoutBackoff(%q) error = %v", tt.name, err)
		}

		if got := b.Next(0, time.Second); got != tt.want {
			t.Fatalf("%s Next(0, 1s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := parseTimeoutBackoff(nil, nil); err == nil {
		t.Fatal("parseTimeoutBackoff(nil) error = nil, want error")
	}
}

func TestBuildOptionsEmpty(t *testing.T) {
	opts, err := BuildOptions(&ClientConfig{})
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	if len(opts) != 0 {
		t.Fatalf("len(opts) = %d, want 0", len(opts))
	}
}

func TestGetClientUserOptionsOverride(t *testing.T) {
	reg, err := LoadConfig("testdata/valid.json")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	c := GetClient(reg, "payments", WithMaxRetries(9))
	if c.MaxRetries() != 9 {
		t.Fatalf("MaxRetries() = %d, want 9", c.MaxRetries())
	}
}

func TestGetClientUnknownName(t *testing.T) {
	c := GetClient(NewRegistry(), "missing", WithBaseURL("http://x"))
	if c.BaseURL() != "http://x" {
		t.Fatalf("BaseURL() = %q, want http://x", c.BaseURL())
	}

	if c.MaxRetries() != DefaultMaxRetries {
		t.Fatalf("MaxRetries() = %d, want %d", c.MaxRetries(), DefaultMaxRetries)
	}
}

func TestRegistryAddRejectsInvalid(t *testing.T) {
	reg := NewRegistry()

	err := reg.Add("bad", ClientConfig{ReadTimeout: strPtr("forever")})
	if err == nil {
		t.Fatal("Add() error = nil, want error")
	}

	if _, ok := reg.Config("bad"); ok {
		t.Fatal("Config(bad) found, want absent after failed Add")
	}
}

// ---------------------------------------------------------------------------
// Presets
// ---------------------------------------------------------------------------

func TestStandardClientPreset(t *testing.T) {
	c := NewClient("http://x", StandardClient()...)

	if c.ConnectTimeout() != 2*time.Second || c.ReadTimeout() != 8*time.Second || c.MaxRetries() != 3 {
		t.Fatalf("StandardClient = %v/%v/%d, want 2s/8s/3",
			c.ConnectTimeout(), c.ReadTimeout(), c.MaxRetries())
	}
}

func TestPatientClientPreset(t *testing.T) {
	c := NewClient("http://x", PatientClient()...)

	if c.ConnectTimeout() != 5*time.Second || c.ReadTimeout() != 30*time.Second || c.MaxRetries() != 5 {
		t.Fatalf("PatientClient = %v/%v/%d, want 5s/30s/5",
			c.ConnectTimeout(), c.ReadTimeout(), c.MaxRetries())
	}

	if !c.elapsedCheck {
		t.Fatal("PatientClient: elapsedCheck = false, want true")
	}

	if c.maxConnectTimeout != time.Minute {
		t.Fatalf("PatientClient maxConnectTimeout = %v, want 1m", c.maxConnectTimeout)
	}
}
