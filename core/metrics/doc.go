// Package metrics exposes Prometheus counters for the inventory engine.
//
// Each Metrics value owns its own registry, so several engines (for example in tests)
// never collide on registration. All recording methods are safe on a nil *Metrics.
//
// # Usage
//
//	m := metrics.New()
//	engine := reconcile.NewEngine(cat, reqs, led, reconcile.WithMetrics(m))
//	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
package metrics
