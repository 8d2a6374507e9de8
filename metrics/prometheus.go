package metrics

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scitags/rtquery/rtnl"
	"github.com/scitags/rtquery/types"
)

var logger *slog.Logger

// Observer exports the lifecycle of rtnetlink dump sessions as Prometheus
// metrics. Plug it into rtnl.Config.Observer.
type Observer struct {
	Config

	reg *prometheus.Registry
	m   *metrics
}

func (o *Observer) String() string {
	return "Prometheus"
}

func NewObserver(c *Config) (*Observer, error) {
	if c == nil {
		c = &DefaultConfig
	}

	if c.Log {
		logger = slog.Default().With("t", "prometheus")
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initialising the prometheus observer")

	o := Observer{Config: *c}

	// Create a non-global registry.
	o.reg = prometheus.NewRegistry()

	o.m = newMetrics(c.Namespace)
	if err := o.m.register(o.reg); err != nil {
		return nil, fmt.Errorf("error registering the metrics: %w", err)
	}

	if c.GoCollectors {
		if err := o.reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, fmt.Errorf("error registering the go collector: %w", err)
		}
		if err := o.reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, fmt.Errorf("error registering the process collector: %w", err)
		}
	}

	return &o, nil
}

// Handler serves the registry in the exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.reg, promhttp.HandlerOpts{Registry: o.reg})
}

func (o *Observer) DumpStarted(kind rtnl.ObjectKind, family types.Family) {
	labels := newLabels(kind, family)
	o.m.Dumps.With(labels).Inc()
	o.m.InFlight.With(labels).Inc()
}

func (o *Observer) RecordDecoded(kind rtnl.ObjectKind, family types.Family, inserted bool) {
	labels := newLabels(kind, family)
	o.m.Decoded.With(labels).Inc()
	if !inserted {
		o.m.Duplicates.With(labels).Inc()
	}
}

func (o *Observer) DumpFinished(kind rtnl.ObjectKind, family types.Family, n int, err error) {
	labels := newLabels(kind, family)
	o.m.InFlight.With(labels).Dec()

	if err != nil {
		logger.Debug("dump failed", "kind", kind, "family", family, "err", err)
		o.m.DumpErrors.With(prometheus.Labels{
			"kind":   kind.String(),
			"family": family.String(),
			"error":  errorClass(err),
		}).Inc()
		return
	}

	o.m.Records.With(labels).Set(float64(n))
}

// errorClass maps an error onto a bounded set of label values.
func errorClass(err error) string {
	var (
		de *rtnl.DumpError
		ce *rtnl.ContractError
	)
	switch {
	case errors.As(err, &de):
		return string(de.Op)
	case errors.As(err, &ce):
		return "contract"
	}
	return "other"
}
