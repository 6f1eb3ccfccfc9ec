package flare

// DropHandler is called when a fault cannot be re-routed: a listener
// failed during an error-category emission, and routing the new fault
// back into CategoryError would recurse without bound. The fault is
// dropped after this one hop; the handler is the side channel for it.
type DropHandler func(origin Category, err error)

// Option configures a Dispatcher.
type Option func(*config)

// config contains configuration for a Dispatcher.
type config struct {
	logger      *Logger
	dropHandler DropHandler
}

// defaultConfig returns the default dispatcher configuration.
func defaultConfig() config {
	return config{
		logger: NullLogger,
	}
}

// WithLogger sets the logger used on degradation paths. The default is
// NullLogger.
func WithLogger(l *Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDropHandler sets the handler for faults dropped by the recursion
// guard. The default is logging only.
func WithDropHandler(h DropHandler) Option {
	return func(c *config) {
		c.dropHandler = h
	}
}
