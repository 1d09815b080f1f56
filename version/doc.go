// Package version reports the build version of seqinput.
//
// Version, Commit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/seqinput/version.Version=1.0.0" ./cmd/seqinput
//
// Unset values fall back to the VCS stamp the Go toolchain embeds.
package version
