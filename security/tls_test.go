package security

import (
	"crypto/tls"
	"testing"

	"github.com/kbukum/webclient/security/tlstest"
)

func TestTLSConfig_Build_NilConfig(t *testing.T) {
	var cfg *TLSConfig
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatal("expected nil for nil config")
	}
}

func TestTLSConfig_Build_ZeroValue(t *testing.T) {
	result, err := (&TLSConfig{}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatal("expected nil for zero-value config")
	}
}

func TestTLSConfig_Build_SkipVerify(t *testing.T) {
	result, err := (&TLSConfig{SkipVerify: true}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify=true")
	}
	if result.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected MinVersion=TLS12, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_ServerNameKeepsVerification(t *testing.T) {
	result, err := (&TLSConfig{ServerName: "example.com"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ServerName != "example.com" {
		t.Errorf("expected ServerName=example.com, got %s", result.ServerName)
	}
	if result.InsecureSkipVerify {
		t.Error("server name alone must not disable verification")
	}
}

func TestTLSConfig_Build_MutualWithCA(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{
		CAFile:     certs.CAFile,
		CertFile:   certs.CertFile,
		KeyFile:    certs.KeyFile,
		MinVersion: tls.VersionTLS13,
	}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RootCAs == nil {
		t.Error("expected RootCAs to be set")
	}
	if len(result.Certificates) != 1 {
		t.Errorf("expected 1 client certificate, got %d", len(result.Certificates))
	}
	if result.InsecureSkipVerify {
		t.Error("a CA bundle makes verification mandatory")
	}
	if result.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected MinVersion=TLS13, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_MutualWithoutCA(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.InsecureSkipVerify {
		t.Error("mutual mode without CA bundle disables verification")
	}
	if result.RootCAs != nil {
		t.Error("expected no RootCAs")
	}
}

func TestTLSConfig_Build_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TLSConfig
	}{
		{"missing CA file", &TLSConfig{CAFile: "/nonexistent/ca.pem"}},
		{"missing cert files", &TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}},
		{"invalid CA content", &TLSConfig{CAFile: tlstest.WriteInvalidPEM(t, "bad-ca.pem")}},
		{"cert without key", &TLSConfig{CertFile: "cert.pem"}},
		{"skip verify with CA", &TLSConfig{SkipVerify: true, CAFile: "ca.pem"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	var nilCfg *TLSConfig
	if err := nilCfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&TLSConfig{CertFile: "c", KeyFile: "k"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&TLSConfig{KeyFile: "k"}).Validate(); err == nil {
		t.Fatal("expected error when KeyFile set without CertFile")
	}
}

func TestTLSConfig_Modes(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *TLSConfig
		enabled  bool
		mutual   bool
		verifies bool
	}{
		{"nil", nil, false, false, true},
		{"zero", &TLSConfig{}, false, false, true},
		{"skip_verify", &TLSConfig{SkipVerify: true}, true, false, false},
		{"ca_file", &TLSConfig{CAFile: "ca.pem"}, true, false, true},
		{"mutual no ca", &TLSConfig{CertFile: "c", KeyFile: "k"}, true, true, false},
		{"mutual with ca", &TLSConfig{CertFile: "c", KeyFile: "k", CAFile: "ca"}, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.enabled {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.enabled)
			}
			if got := tt.cfg.Mutual(); got != tt.mutual {
				t.Errorf("Mutual() = %v, want %v", got, tt.mutual)
			}
			if got := tt.cfg.Verifies(); got != tt.verifies {
				t.Errorf("Verifies() = %v, want %v", got, tt.verifies)
			}
		})
	}
}
