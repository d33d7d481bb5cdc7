/*
Package observability turns conversation lifecycle hooks into Prometheus metrics
and structured log lines.

Hook events carry field names, phases and durations only; candidate answers
never reach a metric label or a log attribute.
*/
package observability
