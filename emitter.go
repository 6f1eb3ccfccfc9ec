package flare

// BoundEmitter provides a simplified API for producers that only ever
// emit under one category. It wraps a Dispatcher and pins the
// category, so call sites do not repeat it.
type BoundEmitter struct {
	d        *Dispatcher
	category Category
}

// NewBoundEmitter creates an emitter pinned to a category.
func NewBoundEmitter(d *Dispatcher, category Category) *BoundEmitter {
	return &BoundEmitter{
		d:        d,
		category: category,
	}
}

// Category returns the pinned category.
func (e *BoundEmitter) Category() Category {
	return e.category
}

// Emit delivers a payload under the pinned category.
func (e *BoundEmitter) Emit(payload any) {
	e.d.Emit(e.category, payload)
}

// Signal delivers a no-payload emission under the pinned category.
func (e *BoundEmitter) Signal() {
	e.d.Emit(e.category, nil)
}
