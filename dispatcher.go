package flare

// Dispatcher is an in-process publish/subscribe dispatcher. Callers
// register interest in named categories; Emit delivers a payload to
// every listener registered for its category, then to every wildcard
// listener. Delivery is synchronous on the emitting goroutine, in
// registration order, over a snapshot of the registry taken before any
// listener runs.
//
// A listener fault (returned error or panic) never reaches the Emit
// caller and never skips sibling listeners; it is wrapped in an error
// value and re-emitted under CategoryError through the same dispatcher.
// A fault raised during that error emission is dropped after the one
// re-routing hop (see DropHandler).
//
// The dispatcher itself is safe for concurrent registration, but the
// delivery model is single-threaded: Emit runs listeners on the
// calling goroutine and the snapshot-then-iterate sequence is not
// atomic across concurrent mutation. Programs emitting from multiple
// goroutines need their own synchronization around Emit.
type Dispatcher struct {
	reg         *registry
	logger      *Logger
	dropHandler DropHandler
}

// New creates a Dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dispatcher{
		reg:         newRegistry(),
		logger:      cfg.logger,
		dropHandler: cfg.dropHandler,
	}
}

// On registers a listener for every future emission under category.
// Registering the same listener twice for the same category is a
// no-op. The wildcard identifier is rejected here: a bare Listener
// cannot receive the (category, payload) pair, use OnAny instead.
// Returns the dispatcher for chained registration.
func (d *Dispatcher) On(category Category, l Listener) *Dispatcher {
	return d.subscribe(category, l, false)
}

// OnFunc is a convenience method for registering a function listener.
func (d *Dispatcher) OnFunc(category Category, fn func(payload any) error) *Dispatcher {
	return d.On(category, ListenerFunc(fn))
}

// Once registers a listener that is removed immediately after its
// first invocation for the category, whether or not that invocation
// faulted. Only one firing ever reaches the listener.
func (d *Dispatcher) Once(category Category, l Listener) *Dispatcher {
	return d.subscribe(category, l, true)
}

// OnceFunc is a convenience method for a one-shot function listener.
func (d *Dispatcher) OnceFunc(category Category, fn func(payload any) error) *Dispatcher {
	return d.Once(category, ListenerFunc(fn))
}

// Off unregisters a listener from a category. Unknown categories and
// absent listeners are a no-op. Wildcard listeners are removed with
// OffAny.
func (d *Dispatcher) Off(category Category, l Listener) *Dispatcher {
	if l == nil || category == Wildcard {
		return d
	}
	d.reg.remove(category, identityOf(l))
	return d
}

// OnAny registers a wildcard listener that fires for every emitted
// event regardless of category, after the category's own listeners.
func (d *Dispatcher) OnAny(l WildcardListener) *Dispatcher {
	if l == nil {
		d.logger.Warn("nil wildcard listener ignored")
		return d
	}
	d.reg.addWild(identityOf(l), l, false)
	return d
}

// OnAnyFunc is a convenience method for a function wildcard listener.
func (d *Dispatcher) OnAnyFunc(fn func(category Category, payload any) error) *Dispatcher {
	return d.OnAny(WildcardListenerFunc(fn))
}

// OnceAny registers a wildcard listener that is removed after its
// first invocation, whether or not that invocation faulted.
func (d *Dispatcher) OnceAny(l WildcardListener) *Dispatcher {
	if l == nil {
		d.logger.Warn("nil wildcard listener ignored")
		return d
	}
	d.reg.addWild(identityOf(l), l, true)
	return d
}

// OffAny unregisters a wildcard listener. Absent listeners are a
// no-op.
func (d *Dispatcher) OffAny(l WildcardListener) *Dispatcher {
	if l == nil {
		return d
	}
	d.reg.removeWild(identityOf(l))
	return d
}

// Emit delivers payload to every listener currently registered for
// category, then to every wildcard listener. Pass nil for categories
// whose contract carries no payload; the dispatcher performs no
// runtime payload validation.
//
// Delivery iterates a snapshot taken before any listener runs, so a
// listener adding or removing listeners during its own invocation does
// not affect this emission. The entire dispatch, including any nested
// error re-emission, completes before Emit returns.
func (d *Dispatcher) Emit(category Category, payload any) {
	if !category.IsValid() {
		d.logger.Warn("emit on invalid category %q dropped", string(category))
		return
	}

	// Both sets are frozen before the first listener runs, so a
	// category listener mutating the wildcard set cannot affect this
	// emission either.
	entries := d.reg.snapshot(category)
	wild := d.reg.snapshotWild()

	for _, e := range entries {
		if e.once && !e.fired.CompareAndSwap(false, true) {
			continue
		}
		err := safeHandle(category, payload, e.listener)
		if e.once {
			d.reg.removeEntry(category, e)
		}
		if err != nil {
			d.fault(category, err)
		}
	}

	for _, w := range wild {
		if w.once && !w.fired.CompareAndSwap(false, true) {
			continue
		}
		err := safeHandleWild(category, payload, w.listener)
		if w.once {
			d.reg.removeWildEntry(w)
		}
		if err != nil {
			d.fault(category, err)
		}
	}
}

// ListenerCount returns the number of listeners registered for a
// category, or the wildcard listener count for the wildcard
// identifier. Pending Once registrations are counted; self-removed
// ones are not.
func (d *Dispatcher) ListenerCount(category Category) int {
	if category == Wildcard {
		return d.reg.countWild()
	}
	return d.reg.count(category)
}

// RemoveAllListeners clears the given categories, or the entire
// registry including the wildcard set when called with no arguments.
// The wildcard identifier clears only the wildcard set.
func (d *Dispatcher) RemoveAllListeners(categories ...Category) *Dispatcher {
	if len(categories) == 0 {
		d.reg.clearAll()
		return d
	}
	for _, c := range categories {
		if c == Wildcard {
			d.reg.clearWild()
			continue
		}
		d.reg.clear(c)
	}
	return d
}

func (d *Dispatcher) subscribe(category Category, l Listener, once bool) *Dispatcher {
	if l == nil {
		d.logger.Warn("nil listener for %q ignored", string(category))
		return d
	}
	return d.subscribeWithID(category, identityOf(l), l, once)
}

// subscribeWithID registers a listener under an explicit identity.
// Typed registrations key by the caller's function rather than the
// adapter wrapped around it, so typed Off can match.
func (d *Dispatcher) subscribeWithID(category Category, id any, l Listener, once bool) *Dispatcher {
	if category == Wildcard {
		d.logger.Warn("wildcard registration rejected, use OnAny")
		return d
	}
	if !category.IsValid() {
		d.logger.Warn("registration on invalid category %q ignored", string(category))
		return d
	}
	d.reg.add(category, id, l, once)
	return d
}

// offID unregisters by explicit identity.
func (d *Dispatcher) offID(category Category, id any) *Dispatcher {
	if category != Wildcard {
		d.reg.remove(category, id)
	}
	return d
}

// fault routes a wrapped listener fault. Faults raised outside the
// error category re-enter the full Emit path under CategoryError.
// Faults raised by listeners during an error emission are dropped
// after that one hop: re-routing them would recurse without bound.
func (d *Dispatcher) fault(origin Category, err error) {
	if origin == CategoryError {
		if d.dropHandler != nil {
			d.dropHandler(origin, err)
		}
		d.logger.Error("fault during error emission dropped: %v", err)
		return
	}
	d.Emit(CategoryError, err)
}
