// Package version reports the build version of the client binary.
//
// Values are set with -ldflags and fall back to the VCS data Go embeds:
//
//	go build -ldflags "-X github.com/kbukum/webclient/version.Version=1.2.0"
package version
