package engine

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

var (
	writeTasksTotal = metrics.NewCounter("ukv_write_tasks_total")
	readTasksTotal  = metrics.NewCounter("ukv_read_tasks_total")
	scanTasksTotal  = metrics.NewCounter("ukv_scan_tasks_total")
	sizeTasksTotal  = metrics.NewCounter("ukv_size_tasks_total")

	writeLatency = metrics.NewHistogram("ukv_write_latency_seconds")
	readLatency  = metrics.NewHistogram("ukv_read_latency_seconds")
	scanLatency  = metrics.NewHistogram("ukv_scan_latency_seconds")

	txnCommitsTotal   = metrics.NewCounter("ukv_txn_commits_total")
	txnConflictsTotal = metrics.NewCounter("ukv_txn_conflicts_total")
)

func controlCommandCounter(command string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`ukv_control_commands_total{command=%q}`, command))
}
