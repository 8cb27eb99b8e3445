package tool

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    metricInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "agent_tool_invocations_total",
        Help: "Tool invocations by persona, tool, and outcome",
    }, []string{"persona", "tool", "outcome"})

    metricDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
        Name:    "agent_tool_duration_ms",
        Help:    "Tool handler duration in milliseconds",
        Buckets: prometheus.ExponentialBuckets(1, 2, 12),
    }, []string{"persona", "tool"})
)
