// Package engine runs one complete assignment pass over a dataset and
// assembles the report.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ticket-assigner/analytics"
	"ticket-assigner/config"
	"ticket-assigner/models"
	"ticket-assigner/scheduler"
)

// SimplifiedLimit is the number of assignments kept in a simplified report.
const SimplifiedLimit = 10

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger passed down to the scheduler.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the clock used for ticket age, decision timestamps and
// report metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

type Engine struct {
	cfg    config.Config
	logger zerolog.Logger
	now    func() time.Time
}

func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process assigns every ticket in ds and returns the report. Agent state in
// ds is mutated; each call uses a fresh skill cache.
func (e *Engine) Process(ds *models.Dataset) *models.Report {
	runID := uuid.NewString()
	logger := e.logger.With().Str("run_id", runID).Logger()

	sched := scheduler.New(e.cfg, scheduler.WithLogger(logger), scheduler.WithClock(e.now))
	assignments := sched.Assign(ds)

	now := e.now()
	report := &models.Report{
		Metadata: models.Metadata{
			RunID:        runID,
			GeneratedAt:  now,
			TotalTickets: len(ds.Tickets),
			TotalAgents:  len(ds.Agents),
		},
		Assignments: assignments,
		Analytics: analytics.Generate(analytics.Input{
			Assignments: assignments,
			Dataset:     ds,
			Extractor:   sched.Extractor(),
			Config:      e.cfg,
			Now:         now,
		}),
	}
	report.Metadata.AssignmentsMade = report.Analytics.Summary.AssignedTickets

	stats := sched.Extractor().Stats()
	logger.Info().
		Int("assigned", report.Analytics.Summary.AssignedTickets).
		Int("unassigned", report.Analytics.Summary.UnassignedTickets).
		Int("skill_gaps", len(report.Analytics.SkillGaps)).
		Int("cache_hits", stats.Hits).
		Int("cache_misses", stats.Misses).
		Msg("run complete")
	return report
}

// Simplify keeps the first SimplifiedLimit assignments with only the
// ticket id, title, agent id and rationale.
func Simplify(r *models.Report) models.SimplifiedReport {
	out := models.SimplifiedReport{Assignments: []models.SimplifiedAssignment{}}
	for i, a := range r.Assignments {
		if i == SimplifiedLimit {
			break
		}
		out.Assignments = append(out.Assignments, models.SimplifiedAssignment{
			TicketID:  a.TicketID,
			Title:     a.Title,
			AgentID:   a.AgentID,
			Rationale: a.Rationale,
		})
	}
	return out
}
