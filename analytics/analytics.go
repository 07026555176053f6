// Package analytics aggregates a completed run into summary statistics,
// skill-gap and overload detection, and recommendations.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ticket-assigner/config"
	"ticket-assigner/extractor"
	"ticket-assigner/metrics"
	"ticket-assigner/models"
	"ticket-assigner/priority"
)

const (
	// ProficientLevel is the minimum skill level counted as qualified.
	ProficientLevel = 7
	// MinQualifiedAgents is the headcount below which a skill is a gap.
	MinQualifiedAgents = 3
	// OverloadedPercent is the utilization above which an agent is called out.
	OverloadedPercent = 80.0

	topDemandedSkills = 10
	maxNamedOverload  = 3
)

// Input is everything Generate reads. None of it is modified.
type Input struct {
	Assignments []models.Assignment
	Dataset     *models.Dataset
	Extractor   *extractor.Extractor
	Config      config.Config
	Now         time.Time
}

// Generate builds the analytics for a run. Calling it again on unchanged
// input yields the same result.
func Generate(in Input) models.Analytics {
	out := models.Analytics{
		PriorityDistribution: make(map[models.Urgency]int),
		AgentWorkload:        make(map[string]models.AgentWorkload),
		SkillDemand:          make(map[string]int),
		SkillGaps:            []models.SkillGap{},
		Recommendations:      []string{},
		AgeDistribution:      make(map[string]int),
	}

	out.Summary.TotalTickets = len(in.Dataset.Tickets)
	out.Summary.TotalAgents = len(in.Dataset.Agents)
	for _, a := range in.Assignments {
		if a.Assigned() {
			out.Summary.AssignedTickets++
		} else {
			out.Summary.UnassignedTickets++
		}
		out.PriorityDistribution[a.Priority]++
	}

	maxLoad := in.Config.MaxLoadPerAgent
	for _, agent := range in.Dataset.Agents {
		pct := float64(agent.CurrentLoad) / float64(maxLoad) * 100
		out.AgentWorkload[agent.ID] = models.AgentWorkload{
			Name:               agent.Name,
			TicketsAssigned:    agent.CurrentLoad,
			PriorityLoad:       math.Round(agent.CurrentPriorityLoad*100) / 100,
			Utilization:        fmt.Sprintf("%.1f%%", pct),
			UtilizationPercent: pct,
			RemainingCapacity:  maxLoad - agent.CurrentLoad,
			Status:             CapacityStatus(pct),
		}
	}

	for _, t := range in.Dataset.Tickets {
		for _, req := range in.Extractor.Extract(t) {
			out.SkillDemand[req.Skill]++
		}
		out.AgeDistribution[priority.AgeCategory(in.Now.Sub(t.CreatedAt).Hours())]++
	}

	out.SkillGaps = skillGaps(out.SkillDemand, in.Dataset.Agents)
	metrics.SkillGaps.Set(float64(len(out.SkillGaps)))

	out.TeamBalance = teamBalance(in.Dataset.Agents)
	out.Recommendations = recommendations(out, in.Dataset.Agents)
	return out
}

// CapacityStatus labels a utilization percentage.
func CapacityStatus(pct float64) string {
	switch {
	case pct >= 90:
		return "overloaded"
	case pct >= 70:
		return "busy"
	case pct >= 40:
		return "moderate"
	default:
		return "available"
	}
}

// RankDemand orders skills by demand, highest first, ties by name.
func RankDemand(demand map[string]int) []string {
	skills := make([]string, 0, len(demand))
	for skill := range demand {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		if demand[skills[i]] == demand[skills[j]] {
			return skills[i] < skills[j]
		}
		return demand[skills[i]] > demand[skills[j]]
	})
	return skills
}

func skillGaps(demand map[string]int, agents []*models.Agent) []models.SkillGap {
	ranked := RankDemand(demand)
	if len(ranked) > topDemandedSkills {
		ranked = ranked[:topDemandedSkills]
	}

	gaps := []models.SkillGap{}
	for _, skill := range ranked {
		qualified := 0
		for _, a := range agents {
			if level, ok := a.Skills[skill]; ok && level >= ProficientLevel {
				qualified++
			}
		}
		if qualified < MinQualifiedAgents {
			gaps = append(gaps, models.SkillGap{
				Skill:           skill,
				Demand:          demand[skill],
				QualifiedAgents: qualified,
			})
		}
	}
	return gaps
}

func recommendations(a models.Analytics, agents []*models.Agent) []string {
	recs := []string{}

	if n := a.Summary.UnassignedTickets; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d tickets remain unassigned - consider hiring or training additional agents", n))
	}

	if len(a.SkillGaps) > 0 {
		top := a.SkillGaps[0]
		recs = append(recs, fmt.Sprintf(
			"Critical skill gap: %s - high demand (%d tickets) but only %d qualified agents",
			top.Skill, top.Demand, top.QualifiedAgents))
	}

	var overloaded []string
	for _, agent := range agents {
		w := a.AgentWorkload[agent.ID]
		if math.Round(w.UtilizationPercent*10)/10 > OverloadedPercent {
			overloaded = append(overloaded, w.Name)
		}
	}
	if len(overloaded) > 0 {
		named := overloaded
		if len(named) > maxNamedOverload {
			named = named[:maxNamedOverload]
		}
		recs = append(recs, fmt.Sprintf("%d agents are over 80%% capacity: %s",
			len(overloaded), strings.Join(named, ", ")))
	}
	return recs
}
