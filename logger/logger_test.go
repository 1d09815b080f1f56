package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("seqinput")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "seqinput" {
		t.Errorf("expected service 'seqinput', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json"}
	if l := New(cfg, "test"); l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "seqinput", &buf)
	l.WithComponent("reader").Info("session finished", Fields(FieldSessionID, "abc", FieldRecords, 5))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "reader" {
		t.Errorf("expected component=reader, got %v", entry[FieldComponent])
	}
	if entry[FieldSessionID] != "abc" {
		t.Errorf("expected session_id=abc, got %v", entry[FieldSessionID])
	}
	if entry[FieldRecords] != float64(5) {
		t.Errorf("expected records=5, got %v", entry[FieldRecords])
	}
	if entry["service"] != "seqinput" {
		t.Errorf("expected service=seqinput, got %v", entry["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "test", &buf)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "test", &buf)
	l.Error("broken")
	if !strings.Contains(buf.String(), "[ERR]") {
		t.Errorf("expected [ERR] tag, got %q", buf.String())
	}
}

func TestWithErrorAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithFields(map[string]interface{}{"k": "v"}).WithError(errTest("bad")).Info("x")
	if !strings.Contains(buf.String(), `"k":"v"`) || !strings.Contains(buf.String(), `"error":"bad"`) {
		t.Errorf("expected fields and error, got %q", buf.String())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestNopDiscards(t *testing.T) {
	Nop().Error("nothing")
}

func TestGlobalLogger(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}

	custom := Nop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	Init(Config{Level: "debug", Format: "json", ServiceName: "svc"})
	if GetGlobalLogger().service != "svc" {
		t.Errorf("expected Init to use the service name, got %q", GetGlobalLogger().service)
	}
	SetGlobalLogger(Nop())
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
}

func TestRegisterAndGet(t *testing.T) {
	named := Nop()
	Register("reader-test", named)
	if Get("reader-test") != named {
		t.Error("expected registered logger")
	}
	if Get("unregistered") == nil {
		t.Error("expected fallback logger")
	}
}

func TestRegisterComponents(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() {
		SetGlobalLogger(prev)
		RegisterComponents()
	})

	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: "json"}, "seqinput", &buf))
	RegisterComponents("convert")

	for _, name := range []string{ComponentReader, ComponentConfig, ComponentCLI, "convert"} {
		buf.Reset()
		Get(name).Info("hello")
		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("%s: expected one JSON line, got %q: %v", name, buf.String(), err)
		}
		if entry[FieldComponent] != name {
			t.Errorf("expected component=%s, got %v", name, entry[FieldComponent])
		}
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
