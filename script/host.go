package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/flare"
)

// Host binds a flare.Dispatcher into an embedded Lua state. Scripts
// see a global `flare` module:
//
//	flare.on(category, fn)        -- register fn for a category
//	flare.once(category, fn)      -- one-shot registration
//	flare.off(category, fn)       -- unregister by function identity
//	flare.on_any(fn)              -- wildcard: fn(category, payload)
//	flare.off_any(fn)
//	flare.emit(category, payload) -- payload optional
//	flare.emit_json(category, doc)
//	flare.listener_count(category)
//	flare.remove_all(category)    -- category optional
//	flare.json_encode(value)
//	flare.json_decode(doc)
//
// A Lua error raised inside a listener travels the dispatcher's normal
// fault route: it is wrapped and re-emitted under flare.CategoryError,
// and never interrupts sibling listeners.
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe, and the
// dispatcher's delivery model is single-threaded. All Host operations,
// including emits that may reach Lua listeners, must happen on one
// goroutine.
type Host struct {
	d      *flare.Dispatcher
	L      *lua.LState
	bridge *Bridge
	logger *flare.Logger
	closed bool

	regs     map[regKey]*luaListener
	wildRegs map[*lua.LFunction]*luaWildListener
}

// regKey identifies one Lua registration. Lua functions are compared
// by *LFunction pointer, mirroring the Go API's identity matching.
type regKey struct {
	category flare.Category
	fn       *lua.LFunction
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger used by the host. The default is
// flare.NullLogger.
func WithHostLogger(l *flare.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHost creates a Lua state, binds the dispatcher into it, and
// returns the host. Close releases the state.
func NewHost(d *flare.Dispatcher, opts ...HostOption) *Host {
	h := &Host{
		d:        d,
		L:        lua.NewState(),
		logger:   flare.NullLogger,
		regs:     make(map[regKey]*luaListener),
		wildRegs: make(map[*lua.LFunction]*luaWildListener),
	}
	h.bridge = NewBridge(h.L)
	for _, opt := range opts {
		opt(h)
	}
	h.install()
	return h
}

// Dispatcher returns the bound dispatcher.
func (h *Host) Dispatcher() *flare.Dispatcher {
	return h.d
}

// State returns the underlying Lua state.
func (h *Host) State() *lua.LState {
	return h.L
}

// Run executes a chunk of Lua source in the host's state.
func (h *Host) Run(src string) error {
	if h.closed {
		return ErrHostClosed
	}
	return h.L.DoString(src)
}

// RunFile executes a Lua file in the host's state.
func (h *Host) RunFile(path string) error {
	if h.closed {
		return ErrHostClosed
	}
	return h.L.DoFile(path)
}

// Close unregisters every Lua listener and releases the Lua state.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	for key, l := range h.regs {
		h.d.Off(key.category, l)
	}
	for _, w := range h.wildRegs {
		h.d.OffAny(w)
	}
	h.regs = nil
	h.wildRegs = nil
	h.L.Close()
}

// install publishes the flare module as a global table.
func (h *Host) install() {
	mod := h.L.NewTable()
	h.L.SetFuncs(mod, map[string]lua.LGFunction{
		"on":             h.lOn,
		"once":           h.lOnce,
		"off":            h.lOff,
		"on_any":         h.lOnAny,
		"off_any":        h.lOffAny,
		"emit":           h.lEmit,
		"emit_json":      h.lEmitJSON,
		"listener_count": h.lListenerCount,
		"remove_all":     h.lRemoveAll,
		"json_encode":    h.lJSONEncode,
		"json_decode":    h.lJSONDecode,
	})
	h.L.SetGlobal("flare", mod)
}

// on registers a Lua function for a category. Re-registering the same
// function for the same category is a no-op, matching the Go API's set
// semantics.
func (h *Host) on(category flare.Category, fn *lua.LFunction, once bool) {
	key := regKey{category: category, fn: fn}
	if _, exists := h.regs[key]; exists {
		return
	}
	l := &luaListener{host: h, category: category, fn: fn, once: once}
	h.regs[key] = l
	if once {
		h.d.Once(category, l)
	} else {
		h.d.On(category, l)
	}
}

func (h *Host) off(category flare.Category, fn *lua.LFunction) {
	key := regKey{category: category, fn: fn}
	l, exists := h.regs[key]
	if !exists {
		return
	}
	delete(h.regs, key)
	h.d.Off(category, l)
}

// forget drops the host-side bookkeeping for a fired once listener.
func (h *Host) forget(key regKey) {
	if h.regs != nil {
		delete(h.regs, key)
	}
}

// call invokes a Lua function with converted arguments. A Lua error
// comes back as a Go error and flows through the dispatcher's fault
// routing.
func (h *Host) call(fn *lua.LFunction, args ...any) error {
	lvals := make([]lua.LValue, len(args))
	for i, a := range args {
		lvals[i] = h.bridge.ToLuaValue(a)
	}
	return h.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lvals...)
}

func (h *Host) lOn(L *lua.LState) int {
	category := flare.Category(L.CheckString(1))
	fn := L.CheckFunction(2)
	h.on(category, fn, false)
	return 0
}

func (h *Host) lOnce(L *lua.LState) int {
	category := flare.Category(L.CheckString(1))
	fn := L.CheckFunction(2)
	h.on(category, fn, true)
	return 0
}

func (h *Host) lOff(L *lua.LState) int {
	category := flare.Category(L.CheckString(1))
	fn := L.CheckFunction(2)
	h.off(category, fn)
	return 0
}

func (h *Host) lOnAny(L *lua.LState) int {
	fn := L.CheckFunction(1)
	if _, exists := h.wildRegs[fn]; exists {
		return 0
	}
	w := &luaWildListener{host: h, fn: fn}
	h.wildRegs[fn] = w
	h.d.OnAny(w)
	return 0
}

func (h *Host) lOffAny(L *lua.LState) int {
	fn := L.CheckFunction(1)
	w, exists := h.wildRegs[fn]
	if !exists {
		return 0
	}
	delete(h.wildRegs, fn)
	h.d.OffAny(w)
	return 0
}

func (h *Host) lEmit(L *lua.LState) int {
	category := flare.Category(L.CheckString(1))
	var payload any
	if L.GetTop() >= 2 {
		payload = h.bridge.ToGoValue(L.Get(2))
	}
	h.d.Emit(category, payload)
	return 0
}

func (h *Host) lEmitJSON(L *lua.LState) int {
	category := flare.Category(L.CheckString(1))
	doc := L.CheckString(2)
	payload, err := DecodePayload(doc)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	h.d.Emit(category, payload)
	return 0
}

func (h *Host) lListenerCount(L *lua.LState) int {
	category := flare.Category(L.CheckString(1))
	L.Push(lua.LNumber(h.d.ListenerCount(category)))
	return 1
}

func (h *Host) lRemoveAll(L *lua.LState) int {
	if L.GetTop() >= 1 {
		category := flare.Category(L.CheckString(1))
		h.d.RemoveAllListeners(category)
		for key := range h.regs {
			if key.category == category {
				delete(h.regs, key)
			}
		}
		if category == flare.Wildcard {
			h.wildRegs = make(map[*lua.LFunction]*luaWildListener)
		}
		return 0
	}
	h.d.RemoveAllListeners()
	h.regs = make(map[regKey]*luaListener)
	h.wildRegs = make(map[*lua.LFunction]*luaWildListener)
	return 0
}

func (h *Host) lJSONEncode(L *lua.LState) int {
	v := h.bridge.ToGoValue(L.Get(1))
	doc, err := EncodePayload(v)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(doc))
	return 1
}

func (h *Host) lJSONDecode(L *lua.LState) int {
	doc := L.CheckString(1)
	v, err := DecodePayload(doc)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(h.bridge.ToLuaValue(v))
	return 1
}

// luaListener adapts a Lua function to the flare.Listener shape.
type luaListener struct {
	host     *Host
	category flare.Category
	fn       *lua.LFunction
	once     bool
}

// Handle implements flare.Listener.
func (l *luaListener) Handle(payload any) error {
	if l.once {
		l.host.forget(regKey{category: l.category, fn: l.fn})
	}
	return l.host.call(l.fn, payload)
}

// luaWildListener adapts a Lua function to the flare.WildcardListener
// shape.
type luaWildListener struct {
	host *Host
	fn   *lua.LFunction
}

// HandleEvent implements flare.WildcardListener.
func (w *luaWildListener) HandleEvent(category flare.Category, payload any) error {
	return w.host.call(w.fn, string(category), payload)
}
