// Package internaldefs holds the shared metric name and help-text tables
// consumed by the exporter packages. It exists so every exporter renders
// the same names for the same [famtask.MetricID] values.
package internaldefs
