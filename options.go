package masonry

// Option configures a Controller with optional dependencies.
type Option func(*controllerOptions)

// controllerOptions holds optional Controller configuration.
type controllerOptions struct {
	distributor    Distributor
	heightProvider HeightProvider
	publisher      LayoutPublisher
	hooks          *Hooks
	metrics        MetricsCollector
	logger         Logger
}

// WithDistributor replaces the distributor selected by Config.Options.
//
// Parameters:
//   - d: Distributor implementation
//
// Returns:
//   - Option: Functional option for NewController
//
// Example:
//
//	ctrl, err := masonry.NewController(&cfg, src, masonry.WithDistributor(myDistributor))
func WithDistributor(d Distributor) Option {
	return func(o *controllerOptions) {
		o.distributor = d
	}
}

// WithHeightProvider sets the height provider used by the shortest-height
// strategy. It has no effect on the other strategies.
//
// Parameters:
//   - provider: HeightProvider implementation (default: strategy.SumHeights)
//
// Returns:
//   - Option: Functional option for NewController
//
// Example:
//
//	provider := masonry.HeightProviderFunc(func(col int, items []masonry.Item) float64 {
//	    return renderer.ColumnHeight(col)
//	})
//	ctrl, err := masonry.NewController(&cfg, src, masonry.WithHeightProvider(provider))
func WithHeightProvider(provider HeightProvider) Option {
	return func(o *controllerOptions) {
		o.heightProvider = provider
	}
}

// WithPublisher sets a publisher that receives every rebuilt layout.
//
// If the publisher also implements VersionedPublisher, the controller seeds its
// version counter from it on Start.
//
// Parameters:
//   - publisher: LayoutPublisher implementation (e.g. publisher.KV)
//
// Returns:
//   - Option: Functional option for NewController
func WithPublisher(publisher LayoutPublisher) Option {
	return func(o *controllerOptions) {
		o.publisher = publisher
	}
}

// WithHooks sets layout event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewController
//
// Example:
//
//	hooks := &masonry.Hooks{
//	    OnLayoutChanged: func(ctx context.Context, prev, next masonry.Layout) error {
//	        return renderer.Apply(next.Columns)
//	    },
//	}
//	ctrl, err := masonry.NewController(&cfg, src, masonry.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *controllerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewController
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "masonry")
//	ctrl, err := masonry.NewController(&cfg, src, masonry.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *controllerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (e.g. logging.NewSlog, logging.NewCharm)
//
// Returns:
//   - Option: Functional option for NewController
func WithLogger(logger Logger) Option {
	return func(o *controllerOptions) {
		o.logger = logger
	}
}
