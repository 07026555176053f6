// Package metrics provides Prometheus observability metrics for the ticket assigner.
// It includes Critical and Important metrics for business and operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// TicketsAssigned tracks tickets given to an agent in the latest run.
var TicketsAssigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "assigner",
	Name:      "tickets_assigned",
	Help:      "Number of tickets assigned to an agent in the latest run",
})

// TicketsUnassigned tracks tickets that required escalation in the latest run.
// Non-zero values mean there were no agents to route to.
var TicketsUnassigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "assigner",
	Name:      "tickets_unassigned",
	Help:      "Number of tickets left unassigned in the latest run",
})

// TicketsByUrgency tracks the urgency distribution of the latest run.
var TicketsByUrgency = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "assigner",
	Name:      "tickets_by_urgency",
	Help:      "Tickets in the latest run broken down by urgency level",
}, []string{"urgency"})

// AgentUtilization tracks end-of-run load relative to max load, per agent.
var AgentUtilization = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "assigner",
	Name:      "agent_utilization_ratio",
	Help:      "Agent current load divided by the configured max load",
}, []string{"agent_id"})

// SkillGaps tracks the number of high-demand skills lacking proficient agents.
var SkillGaps = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "assigner",
	Name:      "skill_gaps",
	Help:      "Number of top-demand skills with fewer than 3 proficient agents",
})

// CriticalTicketsTotal tracks CRITICAL tickets processed across runs.
var CriticalTicketsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "assigner",
	Name:      "critical_tickets_total",
	Help:      "Count of CRITICAL tickets processed",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// SkillCacheHits tracks skill extraction calls served from the per-run cache.
var SkillCacheHits = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "extractor",
	Name:      "cache_hits_total",
	Help:      "Skill extraction lookups served from cache",
})

// SkillCacheMisses tracks skill extraction calls that scanned the lexicon.
var SkillCacheMisses = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "extractor",
	Name:      "cache_misses_total",
	Help:      "Skill extraction lookups that computed requirements",
})

// LoaderErrorsTotal tracks dataset load failures by error type.
var LoaderErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loader",
	Name:      "errors_total",
	Help:      "Total dataset load errors by error type",
}, []string{"error_type"})

// LoaderRecordsTotal tracks agent and ticket records successfully loaded.
var LoaderRecordsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loader",
	Name:      "records_total",
	Help:      "Total dataset records loaded by kind",
}, []string{"kind"})

// LoaderDurationSeconds tracks time to decode and validate a dataset.
var LoaderDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "loader",
	Name:      "duration_seconds",
	Help:      "Time taken to decode and validate the input dataset",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// AssignmentDurationSeconds tracks time to run the assignment loop.
var AssignmentDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "assigner",
	Name:      "duration_seconds",
	Help:      "Time taken to assign every ticket in a run",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0},
})

// MatchScore tracks the winning agent score per assigned ticket.
var MatchScore = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "assigner",
	Name:      "match_score",
	Help:      "Winning agent match score per assigned ticket",
	Buckets:   []float64{0.01, 0.1, 1, 2, 3, 4, 5, 6, 7, 8, 10},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets all per-run gauges before a new assignment run.
// Call this at the start of Scheduler.Assign.
func ResetRunGauges() {
	TicketsAssigned.Set(0)
	TicketsUnassigned.Set(0)
	SkillGaps.Set(0)
	TicketsByUrgency.Reset()
	AgentUtilization.Reset()
}
