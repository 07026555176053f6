package scheduler

import (
	"container/heap"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"ticket-assigner/config"
	"ticket-assigner/extractor"
	"ticket-assigner/metrics"
	"ticket-assigner/models"
	"ticket-assigner/priority"
	"ticket-assigner/scorer"
)

// UnassignedName is recorded as the agent name when no agent exists.
const UnassignedName = "UNASSIGNED"

// EscalationRationale explains an unassigned ticket.
const EscalationRationale = "No suitable agent available - requires escalation or additional resources"

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithClock sets the clock used for ticket age and decision timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// Scheduler runs the greedy, priority-ordered assignment loop. A Scheduler
// owns one skill cache and is meant for a single run.
type Scheduler struct {
	cfg       config.Config
	extractor *extractor.Extractor
	calc      *priority.Calculator
	scorer    *scorer.Scorer
	logger    zerolog.Logger
	now       func() time.Time
}

// New builds a Scheduler for cfg.
func New(cfg config.Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.extractor = extractor.New(cfg.Lexicon)
	s.calc = priority.NewCalculator(cfg, s.now)
	s.scorer = scorer.New(cfg)
	return s
}

// Extractor returns the skill extractor whose cache this run populates.
func (s *Scheduler) Extractor() *extractor.Extractor {
	return s.extractor
}

// Assign processes every ticket in ds strictly one at a time in priority
// order and returns exactly one Assignment per ticket. Agents in ds are
// mutated in place.
func (s *Scheduler) Assign(ds *models.Dataset) []models.Assignment {
	start := time.Now()
	metrics.ResetRunGauges()

	// Enqueue
	items := make([]queueItem, 0, len(ds.Tickets))
	for _, t := range ds.Tickets {
		items = append(items, queueItem{ticket: t, priority: s.calc.Calculate(t)})
	}
	queue := newTicketQueue(items)

	// Drain
	assignments := make([]models.Assignment, 0, len(ds.Tickets))
	for queue.Len() > 0 {
		item := heap.Pop(queue).(queueItem)
		a := s.assignOne(item.ticket, item.priority, ds.Agents)
		assignments = append(assignments, a)

		metrics.TicketsByUrgency.WithLabelValues(string(a.Priority)).Inc()
		if a.Priority == models.UrgencyCritical {
			metrics.CriticalTicketsTotal.Inc()
		}
		if a.Assigned() {
			metrics.TicketsAssigned.Inc()
			metrics.MatchScore.Observe(a.MatchScore)
		} else {
			metrics.TicketsUnassigned.Inc()
		}
	}

	for _, agent := range ds.Agents {
		metrics.AgentUtilization.WithLabelValues(agent.ID).
			Set(float64(agent.CurrentLoad) / float64(s.cfg.MaxLoadPerAgent))
	}
	metrics.AssignmentDurationSeconds.Observe(time.Since(start).Seconds())

	s.logger.Info().
		Int("tickets", len(ds.Tickets)).
		Int("agents", len(ds.Agents)).
		Dur("elapsed", time.Since(start)).
		Msg("assignment run complete")
	return assignments
}

func (s *Scheduler) assignOne(t models.Ticket, p models.TicketPriority, agents []*models.Agent) models.Assignment {
	reqs := s.extractor.Extract(t)
	record := models.Assignment{
		TicketID:       t.ID,
		Title:          t.Title,
		Priority:       p.Urgency,
		PriorityScore:  p.Score,
		BusinessImpact: p.BusinessImpact,
		AffectedUsers:  p.AffectedUsers,
		SecurityRisk:   p.SecurityRisk,
		RequiredSkills: reqs.Names(5),
		MatchedSkills:  []string{},
		Timestamp:      s.now(),
	}

	if len(agents) == 0 {
		record.AgentName = UnassignedName
		record.Rationale = EscalationRationale
		s.logger.Warn().Str("ticket_id", t.ID).Msg("could not assign ticket, no suitable agent")
		return record
	}

	scores := s.scoreAll(agents, reqs, p)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Total > scores[best].Total {
			best = i
		}
	}
	agent := agents[best]
	winner := scores[best]

	// Rationale describes the agent as it was before this ticket landed.
	record.Rationale = buildRationale(agent, winner, p)
	agentID := agent.ID
	record.AgentID = &agentID
	record.AgentName = agent.Name
	record.MatchScore = winner.Total
	record.MatchedSkills = firstN(winner.MatchedSkills, 5)
	for _, b := range scorer.Backups(agent.ID, agents, reqs) {
		record.BackupAgents = append(record.BackupAgents, b.AgentID)
	}

	agent.CurrentLoad++
	agent.AssignedTickets = append(agent.AssignedTickets, t.ID)
	agent.CurrentPriorityLoad += p.Score

	s.logger.Debug().
		Str("ticket_id", t.ID).
		Str("agent_id", agent.ID).
		Float64("score", winner.Total).
		Str("urgency", string(p.Urgency)).
		Msg("ticket assigned")
	return record
}

// scoreAll scores every agent. Scoring only reads agent state, so the scan
// fans out over ScoringWorkers goroutines; selection happens afterwards in
// agent order.
func (s *Scheduler) scoreAll(agents []*models.Agent, reqs models.Requirements, p models.TicketPriority) []scorer.Breakdown {
	out := make([]scorer.Breakdown, len(agents))
	if s.cfg.ScoringWorkers <= 1 || len(agents) < 2 {
		for i, a := range agents {
			out[i] = s.scorer.Score(a, reqs, p)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.ScoringWorkers)
	for i, a := range agents {
		i, a := i, a
		g.Go(func() error {
			out[i] = s.scorer.Score(a, reqs, p)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func buildRationale(agent *models.Agent, b scorer.Breakdown, p models.TicketPriority) string {
	var parts []string

	if len(b.MatchedSkills) > 0 {
		details := make([]string, 0, 3)
		for _, skill := range firstN(b.MatchedSkills, 3) {
			details = append(details, fmt.Sprintf("%s (%d)", skill, agent.Skills[skill]))
		}
		parts = append(parts, "Strong skills in "+strings.Join(details, ", "))
	}

	parts = append(parts, ExperienceTier(agent.ExperienceLevel))

	switch {
	case agent.CurrentLoad <= 2:
		parts = append(parts, "optimal workload capacity")
	case agent.CurrentLoad <= 4:
		parts = append(parts, "balanced workload")
	}

	if p.Urgency == models.UrgencyCritical || p.Urgency == models.UrgencyHigh {
		parts = append(parts, fmt.Sprintf("capable of handling %s priority", p.Urgency))
	}

	return fmt.Sprintf("Assigned to %s (%s) - %s. Match score: %.2f, Priority: %s",
		agent.Name, agent.ID, strings.Join(parts, ", "), b.Total, p.Urgency)
}

// ExperienceTier labels an experience level.
func ExperienceTier(experience int) string {
	switch {
	case experience >= 10:
		return "senior expert level"
	case experience >= 7:
		return "experienced professional"
	case experience >= 4:
		return "competent handler"
	default:
		return "developing expertise"
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string{}, s...)
}
