//go:build !windows

package plugin

import (
	stdplugin "plugin"

	"circuitgo/component"
	"circuitgo/errcode"
)

// Load opens the shared object at path and resolves Symbol. If the
// symbol is absent or the file fails to open, the returned Plugin
// reports IsLoaded() == false (a library that did open stays loaded;
// nothing closes it) — spec.md §7.3
// ("Plugin load failure: surface a queryable is-loaded false"). err is
// non-nil only for the caller that wants the underlying reason; a
// caller that only checks IsLoaded() can ignore it.
func Load(path string) (*Plugin, error) {
	p := &Plugin{path: path}

	lib, err := stdplugin.Open(path)
	if err != nil {
		return p, errcode.Wrap("plugin.Load", errcode.ErrPluginNotLoaded, err)
	}

	sym, err := lib.Lookup(Symbol)
	if err != nil {
		return p, errcode.New("plugin.Load", errcode.ErrPluginSymbol, Symbol)
	}

	newComp, ok := resolveSymbol(sym)
	if !ok {
		return p, errcode.New("plugin.Load", errcode.ErrPluginSymbol, Symbol+" has wrong signature")
	}

	p.newComp = newComp
	p.loaded = true
	return p, nil
}

// resolveSymbol accepts the symbol's plain, unnamed function type — a
// plugin's exported NewComponent necessarily has type
// func() *component.Component, never the NewComponentFunc named type,
// since across a plugin boundary only the underlying signature need
// match.
func resolveSymbol(sym stdplugin.Symbol) (NewComponentFunc, bool) {
	fn, ok := sym.(func() *component.Component)
	if !ok {
		return nil, false
	}
	return NewComponentFunc(fn), true
}
