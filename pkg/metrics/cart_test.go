package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestCartGaugeTracksOpensAndDrops(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.CartOpened()
	m.CartOpened()
	m.CartDropped()

	family := gatherMetric(t, reg, "cart_active_total")
	if family == nil {
		t.Fatal("expected cart_active_total to be registered")
	}
	if got := family.GetMetric()[0].GetGauge().GetValue(); got != 1 {
		t.Fatalf("expected gauge 1, got %v", got)
	}
}

func TestMutationCounterLabelsByOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncMutation("add")
	m.IncMutation("add")
	m.IncMutation("clear")
	m.IncMutation("")

	family := gatherMetric(t, reg, "cart_mutations_total")
	if family == nil {
		t.Fatal("expected cart_mutations_total to be registered")
	}

	byOp := map[string]float64{}
	for _, metric := range family.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "op" {
				byOp[label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}

	if byOp["add"] != 2 {
		t.Fatalf("expected add=2, got %v", byOp["add"])
	}
	if byOp["clear"] != 1 {
		t.Fatalf("expected clear=1, got %v", byOp["clear"])
	}
	if byOp["unknown"] != 1 {
		t.Fatalf("expected unknown=1, got %v", byOp["unknown"])
	}
}

func TestNotificationCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncNotification()
	m.IncNotification()

	family := gatherMetric(t, reg, "cart_notifications_total")
	if family == nil {
		t.Fatal("expected cart_notifications_total to be registered")
	}
	if got := family.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 notifications, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *CartMetrics
	m.CartOpened()
	m.CartDropped()
	m.IncMutation("add")
	m.IncNotification()

	empty := NewCartMetrics(nil)
	empty.CartOpened()
	empty.IncMutation("add")
}
