package metrics

import (
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), nil)
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := gauge.Write(metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	return metric.GetGauge().GetValue()
}

// TestMetricsInitialization tests that all metrics are properly initialized
func TestMetricsInitialization(t *testing.T) {
	m := getTestMetrics()

	if m.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal should not be nil")
	}
	if m.HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration should not be nil")
	}
	if m.DBConnectionsOpen == nil {
		t.Error("DBConnectionsOpen should not be nil")
	}
	if m.DBQueryDuration == nil {
		t.Error("DBQueryDuration should not be nil")
	}
	if m.DBQueryErrors == nil {
		t.Error("DBQueryErrors should not be nil")
	}
	if m.ExternalAPIRequestsTotal == nil {
		t.Error("ExternalAPIRequestsTotal should not be nil")
	}
	if m.ProjectsTotal == nil {
		t.Error("ProjectsTotal should not be nil")
	}
	if m.TasksTotal == nil {
		t.Error("TasksTotal should not be nil")
	}
	if m.FieldDefinitionsTotal == nil {
		t.Error("FieldDefinitionsTotal should not be nil")
	}
	if m.FieldValuesTotal == nil {
		t.Error("FieldValuesTotal should not be nil")
	}
	if m.FieldDefinitionCreatedTotal == nil {
		t.Error("FieldDefinitionCreatedTotal should not be nil")
	}
	if m.FieldValueWritesTotal == nil {
		t.Error("FieldValueWritesTotal should not be nil")
	}
	if m.OrphanedValuesDeletedTotal == nil {
		t.Error("OrphanedValuesDeletedTotal should not be nil")
	}
}

func TestMetricNamingAndHelp(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	// touch the label-less counters and one combination of each vec so
	// everything shows up in the gather
	m.IncrementProjectCreated()
	m.IncrementTaskCreated()
	m.IncrementFieldDefinitionCreated()
	m.IncrementFieldValueWrite()
	m.AddOrphanedValuesDeleted(2)
	m.RecordHTTPRequest("GET", "/api/field-definitions", 200, 10*time.Millisecond)
	m.RecordDBQuery("query", "field_definitions", time.Millisecond, nil)
	m.RecordExternalAPICall("/api/internal/users/:id/subscription", "GET", 200, 5*time.Millisecond, nil)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Expected gathered metric families")
	}

	snakeCase := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	for _, family := range families {
		if !snakeCase.MatchString(family.GetName()) {
			t.Errorf("Metric %q is not snake_case", family.GetName())
		}
		if family.GetHelp() == "" {
			t.Errorf("Metric %q has no help description", family.GetName())
		}
	}
}

func TestBusinessCounters(t *testing.T) {
	m := getTestMetrics()

	m.IncrementFieldDefinitionCreated()
	m.IncrementFieldDefinitionCreated()
	if got := getCounterValue(t, m.FieldDefinitionCreatedTotal); got != 2 {
		t.Errorf("Expected field_definition_created_total = 2, got %v", got)
	}

	m.IncrementFieldValueWrite()
	if got := getCounterValue(t, m.FieldValueWritesTotal); got != 1 {
		t.Errorf("Expected field_value_writes_total = 1, got %v", got)
	}

	m.AddOrphanedValuesDeleted(3)
	if got := getCounterValue(t, m.OrphanedValuesDeletedTotal); got != 3 {
		t.Errorf("Expected orphaned_values_deleted_total = 3, got %v", got)
	}

	m.SetFieldDefinitionsTotal(7)
	if got := getGaugeValue(t, m.FieldDefinitionsTotal); got != 7 {
		t.Errorf("Expected field_definitions_total = 7, got %v", got)
	}
}
