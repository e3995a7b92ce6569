package gologger

import (
	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// Ensure returns the logger or a nop fallback when nil.
func Ensure(logger glog.Logger) glog.Logger {
	return glog.Ensure(logger)
}

// Named resolves a child logger for a component, falling back to the parent
// when the provider cannot supply one.
func Named(provider glog.LoggerProvider, parent glog.Logger, name string) glog.Logger {
	if provider != nil {
		if named := provider.GetLogger(name); named != nil {
			return glog.Ensure(named)
		}
	}
	return glog.Ensure(parent)
}
