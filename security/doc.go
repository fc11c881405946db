// Package security provides the TLS settings used by the HTTPS transport.
//
// A nil or empty TLSConfig means standard certificate validation against the
// system roots. Supplying a client certificate and key switches to mutual TLS;
// in that mode a CA bundle makes peer verification mandatory, and leaving it
// out disables verification:
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/path/to/ca.pem",
//	    CertFile: "/path/to/cert.pem",
//	    KeyFile:  "/path/to/key.pem",
//	}
//
//	tlsConfig, err := cfg.Build()
package security
