package logger

import "sync"

// Component names tagged on seqinput loggers.
const (
	ComponentReader = "reader"
	ComponentConfig = "config"
	ComponentCLI    = "cli"
)

var (
	componentsMu sync.RWMutex
	components   = map[string]*Logger{}
)

// Register installs l as the logger for a component.
func Register(name string, l *Logger) {
	componentsMu.Lock()
	components[name] = l
	componentsMu.Unlock()
}

// Get returns the logger for a component. A component with no registered
// logger gets the current global logger tagged with its name.
func Get(name string) *Logger {
	componentsMu.RLock()
	l, ok := components[name]
	componentsMu.RUnlock()
	if ok {
		return l
	}
	return WithComponent(name)
}

// RegisterComponents derives the reader, config and cli loggers, plus any
// extra names, from the global logger. Call it after SetGlobalLogger so they
// pick up the configured level, format and writer.
func RegisterComponents(extra ...string) {
	global := GetGlobalLogger()
	for _, name := range append([]string{ComponentReader, ComponentConfig, ComponentCLI}, extra...) {
		Register(name, global.WithComponent(name))
	}
}
