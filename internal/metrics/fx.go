package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(
		func() *prometheus.Registry {
			return prometheus.NewRegistry()
		},
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		NewCollector,
	),
)
