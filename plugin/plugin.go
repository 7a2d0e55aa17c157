// Package plugin loads a Component packaged as a Go plugin (a shared
// object built with -buildmode=plugin exporting a NewComponent symbol).
// Grounded on original_source/include/dspatch/Plugin.h's
// open/resolve-symbol/invoke/close contract and spec.md §6's "Plugin
// loading" boundary: the core does not interpret the library beyond
// open, resolve symbol, invoke to produce a component. There is no
// unload: an opened library is never closed and stays loaded for the
// life of the process.
package plugin

import (
	"circuitgo/component"
	"circuitgo/errcode"
)

// Symbol is the exported name a plugin must provide: a zero-argument
// function returning a freshly allocated *component.Component.
const Symbol = "NewComponent"

// NewComponentFunc is the shape a plugin's exported Symbol must have.
type NewComponentFunc func() *component.Component

// Plugin represents one loaded shared library. The zero value is not
// loaded; use Load.
type Plugin struct {
	path    string
	loaded  bool
	newComp NewComponentFunc
}

// IsLoaded reports whether the plugin's symbol was successfully
// resolved and Create is therefore usable.
func (p *Plugin) IsLoaded() bool { return p.loaded }

// Create instantiates a new Component from the plugin, or returns
// errcode.ErrPluginNotLoaded if the plugin failed to load.
func (p *Plugin) Create() (*component.Component, error) {
	if !p.loaded {
		return nil, errcode.New("Plugin.Create", errcode.ErrPluginNotLoaded, p.path)
	}
	return p.newComp(), nil
}
