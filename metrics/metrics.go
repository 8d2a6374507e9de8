package metrics

import (
	"context"
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/scitags/rtquery/rtnl"
	"github.com/scitags/rtquery/types"
)

// Metric labels (note these are **always** strings):
//
//	kind: interfaces, addresses or routes
//	family: v4, v6 or unspec for interface dumps
var baseLabels = []string{"kind", "family"}

type metrics struct {
	Dumps      *prometheus.CounterVec
	DumpErrors *prometheus.CounterVec
	InFlight   *prometheus.GaugeVec

	Decoded    *prometheus.CounterVec
	Duplicates *prometheus.CounterVec

	// Size of the last successful result.
	Records *prometheus.GaugeVec
}

func newMetrics(namespace string) *metrics {
	return &metrics{
		Dumps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dumps_total",
			Help:      "Dump sessions started",
		}, baseLabels),
		DumpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dump_errors_total",
			Help:      "Dump sessions that ended in an error",
		}, append(baseLabels, "error")),
		InFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dumps_in_flight",
			Help:      "Dump sessions currently running",
		}, baseLabels),

		Decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_decoded_total",
			Help:      "Records decoded from dump replies, duplicates included",
		}, baseLabels),
		Duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_duplicate_total",
			Help:      "Decoded records equal to one already in the result",
		}, baseLabels),

		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records in the last successful result",
		}, baseLabels),
	}
}

// (Nastily) use reflection to avoid having to manually register everything.
func (m *metrics) register(reg prometheus.Registerer) error {
	v := reflect.ValueOf(*m)

	i := 0
	for i = 0; i < v.NumField(); i++ {
		vv, ok := v.Field(i).Interface().(prometheus.Collector)
		if !ok {
			return fmt.Errorf("error casting the interface for index %d", i)
		}
		if err := reg.Register(vv); err != nil {
			return fmt.Errorf("error registering index %d: %w", i, err)
		}
	}
	logger.Log(context.Background(), types.LevelTrace, "registered collectors", "i", i)

	return nil
}

func newLabels(kind rtnl.ObjectKind, family types.Family) prometheus.Labels {
	return prometheus.Labels{
		"kind":   kind.String(),
		"family": family.String(),
	}
}
