// Package metrics records the outcome of netlist evaluations as Prometheus
// metrics. A Recorder owns a private registry, so several recorders can
// coexist (one per run, one per test), and its content can be exported in
// the node_exporter textfile format with WriteTextfile.
package metrics
