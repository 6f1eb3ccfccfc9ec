package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/flare"
)

// Manifest binds Lua listener scripts to dispatcher categories. It is
// loaded from a TOML document:
//
//	[[listener]]
//	category = "session.closed"
//	script = "on_close.lua"
//
//	[[listener]]
//	category = "boot"
//	script = "boot.lua"
//	once = true
//
//	[[listener]]
//	wildcard = true
//	script = "audit.lua"
//
// Each script file must return a Lua function: the listener for
// category bindings, or a function of (category, payload) for wildcard
// bindings.
type Manifest struct {
	Listeners []Binding `toml:"listener"`
}

// Binding declares one script-to-category attachment.
type Binding struct {
	// Category is the category to register under. Ignored when
	// Wildcard is set.
	Category string `toml:"category"`

	// Script is the Lua file path, relative to the manifest directory.
	Script string `toml:"script"`

	// Once registers the listener for a single firing.
	Once bool `toml:"once"`

	// Wildcard registers the script for every category.
	Wildcard bool `toml:"wildcard"`
}

// LoadManifest reads and validates a TOML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every binding.
func (m *Manifest) Validate() error {
	for i, b := range m.Listeners {
		if b.Script == "" {
			return fmt.Errorf("listener %d: %w", i, ErrMissingScript)
		}
		if b.Wildcard {
			continue
		}
		if b.Category == "" {
			return fmt.Errorf("listener %d: %w", i, ErrMissingCategory)
		}
		if !flare.Category(b.Category).IsValid() {
			return fmt.Errorf("listener %d: invalid category %q", i, b.Category)
		}
	}
	return nil
}

// Attach loads every binding's script and registers the returned
// function with the host's dispatcher. Script paths are resolved
// relative to dir.
func (h *Host) Attach(m *Manifest, dir string) error {
	if h.closed {
		return ErrHostClosed
	}

	for i, b := range m.Listeners {
		fn, err := h.loadListener(filepath.Join(dir, b.Script))
		if err != nil {
			return fmt.Errorf("listener %d (%s): %w", i, b.Script, err)
		}

		if b.Wildcard {
			w := &luaWildListener{host: h, fn: fn}
			if b.Once {
				h.d.OnceAny(w)
			} else {
				h.wildRegs[fn] = w
				h.d.OnAny(w)
			}
			h.logger.Debug("attached wildcard script %s", b.Script)
			continue
		}

		h.on(flare.Category(b.Category), fn, b.Once)
		h.logger.Debug("attached script %s to %s", b.Script, b.Category)
	}
	return nil
}

// loadListener runs a script file and takes the Lua function it
// returns.
func (h *Host) loadListener(path string) (*lua.LFunction, error) {
	chunk, err := h.L.LoadFile(path)
	if err != nil {
		return nil, err
	}

	h.L.Push(chunk)
	if err := h.L.PCall(0, 1, nil); err != nil {
		return nil, err
	}

	ret := h.L.Get(-1)
	h.L.Pop(1)

	fn, ok := ret.(*lua.LFunction)
	if !ok {
		return nil, ErrNotFunction
	}
	return fn, nil
}
