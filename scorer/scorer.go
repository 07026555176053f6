// Package scorer rates how well an agent fits a ticket.
//
// The score is a weighted sum of five factors on a nominal 0-10 scale:
//
//	skill*W_skill + experience*W_exp + workload*W_load + capability*W_pri + performance*0.1
//
// The four W_ weights come from configuration and are not normalized, so the
// magnitude of a score depends on the configured weights. Scores are only
// comparable within a single configuration. Two multiplicative penalties
// follow: x0.1 for an agent that is not Available and x0.01 for an agent at
// or above max load. Neither penalty excludes the agent.
package scorer

import (
	"math"
	"sort"

	"ticket-assigner/config"
	"ticket-assigner/models"
)

const (
	// PerformanceWeight is fixed and not configurable.
	PerformanceWeight = 0.1

	UnavailablePenalty = 0.1
	OverloadPenalty    = 0.01

	// neutral is used when a factor has no data to work from.
	neutral = 5.0
)

// Breakdown is the full scoring result for one agent-ticket pair.
type Breakdown struct {
	SkillMatch    float64
	Experience    float64
	Workload      float64
	Capability    float64
	Performance   float64
	Base          float64
	Total         float64
	MatchedSkills []string
	Unavailable   bool
	Overloaded    bool
}

// Scorer computes Breakdowns under a fixed configuration.
type Scorer struct {
	cfg config.Config
}

// New returns a Scorer for cfg.
func New(cfg config.Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score rates agent for a ticket with the given requirements and priority.
// It reads agent state and never modifies it.
func (s *Scorer) Score(agent *models.Agent, reqs models.Requirements, p models.TicketPriority) Breakdown {
	var b Breakdown

	if len(reqs) == 0 {
		b.SkillMatch = neutral
	} else {
		sum := 0.0
		for _, req := range reqs {
			level, ok := agent.Skills[req.Skill]
			if !ok {
				continue
			}
			sum += float64(level) * req.Weight
			b.MatchedSkills = append(b.MatchedSkills, req.Skill)
		}
		b.SkillMatch = sum / float64(len(reqs))
	}

	b.Experience = math.Min(float64(agent.ExperienceLevel)/10, 1.0) * 10

	maxLoad := s.cfg.MaxLoadPerAgent
	b.Workload = (1 - float64(agent.CurrentLoad)/float64(maxLoad)) * 10

	b.Capability = Capability(p.Urgency, agent.ExperienceLevel)

	b.Performance = neutral
	if agent.Performance.Total > 0 {
		b.Performance = float64(agent.Performance.Resolved) / float64(agent.Performance.Total) * 10
	}

	b.Base = b.SkillMatch*s.cfg.SkillMatchWeight +
		b.Experience*s.cfg.ExperienceWeight +
		b.Workload*s.cfg.WorkloadWeight +
		b.Capability*s.cfg.PriorityWeight +
		b.Performance*PerformanceWeight

	b.Total = b.Base
	if !agent.IsAvailable() {
		b.Unavailable = true
		b.Total *= UnavailablePenalty
	}
	if agent.CurrentLoad >= maxLoad {
		b.Overloaded = true
		b.Total *= OverloadPenalty
	}
	return b
}

// Capability rates whether an agent's experience meets the bar for urgency.
func Capability(urgency models.Urgency, experience int) float64 {
	switch {
	case urgency == models.UrgencyCritical && experience >= 8:
		return 10
	case urgency == models.UrgencyHigh && experience >= 6:
		return 8
	case urgency == models.UrgencyMedium && experience >= 4:
		return 6
	default:
		return neutral
	}
}

// Backup is an alternate agent for a ticket.
type Backup struct {
	AgentID string
	Score   float64
}

// Backups ranks up to three agents other than primaryID who hold at least one
// required skill.
func Backups(primaryID string, agents []*models.Agent, reqs models.Requirements) []Backup {
	var out []Backup
	for _, a := range agents {
		if a.ID == primaryID {
			continue
		}
		overlap := 0
		for _, req := range reqs {
			overlap += a.Skills[req.Skill]
		}
		if overlap <= 0 {
			continue
		}
		score := float64(overlap) * 0.6
		if a.IsAvailable() {
			score += 20
		}
		score += float64(a.ExperienceLevel) * 0.5
		out = append(out, Backup{AgentID: a.ID, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].AgentID < out[j].AgentID
		}
		return out[i].Score > out[j].Score
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
