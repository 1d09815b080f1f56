package version

import (
	"runtime/debug"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev", Info{Version: "dev"}, "dev"},
		{"commit", Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	info := Info{Version: "1.2.0"}
	fromBuildInfo(&info, bi)
	if info.Commit != "0123456" || !info.Dirty || info.BuildTime != "2026-01-02T03:04:05Z" || info.GoVersion != "go1.26.0" {
		t.Errorf("unexpected info %+v", info)
	}

	info = Info{Version: "1.2.0", Commit: "feedbee", BuildTime: "yesterday"}
	fromBuildInfo(&info, bi)
	if info.Commit != "feedbee" || info.BuildTime != "yesterday" {
		t.Errorf("link-time values must win, got %+v", info)
	}
}

func TestGet(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "9.9.9"
	if got := Get(); got.Version != "9.9.9" {
		t.Errorf("got %q", got.Version)
	}
}
