/*
Package observability turns engine lifecycle events into Prometheus metrics and
audit log lines.

Both are plain domain.LifecycleHooks and can be merged:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
	engine := runtime.NewEngine(prompter, resolver, runtime.WithLifecycleHooks(hooks))
*/
package observability
