//go:build windows

package plugin

import "circuitgo/errcode"

// Load always reports a not-loaded Plugin on platforms the stdlib
// plugin package doesn't support (notably Windows), mirroring the
// teacher's setup_none.go/setup_selected.go build-tag split between a
// real platform implementation and a no-op stub for the rest.
func Load(path string) (*Plugin, error) {
	return &Plugin{path: path}, errcode.New("plugin.Load", errcode.ErrPluginNotLoaded, "plugins unsupported on this platform")
}
