package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-assigner/analytics"
	"ticket-assigner/config"
	"ticket-assigner/extractor"
	"ticket-assigner/metrics"
	"ticket-assigner/models"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func gapScenario() analytics.Input {
	agents := []*models.Agent{
		{ID: "a1", Name: "Dee", Skills: map[string]int{"Database_SQL": 9}, ExperienceLevel: 7, CurrentLoad: 9, CurrentPriorityLoad: 30.456},
		{ID: "a2", Name: "Eve", Skills: map[string]int{"Database_SQL": 7, "Printer_Troubleshooting": 8}, ExperienceLevel: 5, CurrentLoad: 8},
		{ID: "a3", Name: "Fay", Skills: map[string]int{"Database_SQL": 6, "Printer_Troubleshooting": 9}, ExperienceLevel: 3},
	}

	var tickets []models.Ticket
	var assignments []models.Assignment
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("S%02d", i)
		tickets = append(tickets, models.Ticket{ID: id, Description: "slow sql database query", CreatedAt: now.Add(-30 * time.Minute)})
		assignments = append(assignments, models.Assignment{TicketID: id, AgentID: strPtr("a1"), Priority: models.UrgencyLow})
	}
	for i := 0; i < 2; i++ {
		id := fmt.Sprintf("P%02d", i)
		tickets = append(tickets, models.Ticket{ID: id, Description: "printer jam", CreatedAt: now.Add(-100 * time.Hour)})
		assignments = append(assignments, models.Assignment{TicketID: id, Priority: models.UrgencyMedium})
	}
	assignments[11].AgentID = strPtr("a2")

	return analytics.Input{
		Assignments: assignments,
		Dataset:     models.NewDataset(agents, tickets),
		Extractor:   extractor.New(config.DefaultLexicon()),
		Config:      config.Default(),
		Now:         now,
	}
}

func TestGenerate(t *testing.T) {
	got := analytics.Generate(gapScenario())

	assert.Equal(t, models.Summary{TotalTickets: 12, TotalAgents: 3, AssignedTickets: 11, UnassignedTickets: 1}, got.Summary)
	assert.Equal(t, map[models.Urgency]int{models.UrgencyLow: 10, models.UrgencyMedium: 2}, got.PriorityDistribution)
	assert.Equal(t, map[string]int{"Database_SQL": 10, "Printer_Troubleshooting": 2}, got.SkillDemand)
	assert.Equal(t, map[string]int{"new": 10, "overdue": 2}, got.AgeDistribution)

	require.Len(t, got.AgentWorkload, 3)
	dee := got.AgentWorkload["a1"]
	assert.Equal(t, "Dee", dee.Name)
	assert.Equal(t, 9, dee.TicketsAssigned)
	assert.Equal(t, 30.46, dee.PriorityLoad)
	assert.Equal(t, "90.0%", dee.Utilization)
	assert.Equal(t, 1, dee.RemainingCapacity)
	assert.Equal(t, "overloaded", dee.Status)
	assert.Equal(t, "busy", got.AgentWorkload["a2"].Status)
	assert.Equal(t, "0.0%", got.AgentWorkload["a3"].Utilization)
	assert.Equal(t, "available", got.AgentWorkload["a3"].Status)

	assert.Equal(t, []models.SkillGap{
		{Skill: "Database_SQL", Demand: 10, QualifiedAgents: 2},
		{Skill: "Printer_Troubleshooting", Demand: 2, QualifiedAgents: 2},
	}, got.SkillGaps)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SkillGaps))

	assert.Equal(t, []string{
		"1 tickets remain unassigned - consider hiring or training additional agents",
		"Critical skill gap: Database_SQL - high demand (10 tickets) but only 2 qualified agents",
		"1 agents are over 80% capacity: Dee",
	}, got.Recommendations)

	assert.Equal(t, "poor", got.TeamBalance.Category)
	assert.Equal(t, 8.0, got.TeamBalance.Workload.Median)
	assert.Equal(t, 0.0, got.TeamBalance.Workload.Min)
	assert.Equal(t, 9.0, got.TeamBalance.Workload.Max)
	assert.InDelta(t, 5.0, got.TeamBalance.Experience.Mean, 1e-9)
}

func TestGenerateIsRepeatable(t *testing.T) {
	in := gapScenario()
	first := analytics.Generate(in)
	second := analytics.Generate(in)
	assert.Equal(t, first, second)
	assert.Equal(t, 12, in.Extractor.Stats().Misses)
	assert.Equal(t, 12, in.Extractor.Stats().Hits)
}

func TestGenerateNoAgents(t *testing.T) {
	ticket := models.Ticket{ID: "T1", Description: "printer jam", CreatedAt: now}
	got := analytics.Generate(analytics.Input{
		Assignments: []models.Assignment{{TicketID: "T1", Priority: models.UrgencyLow}},
		Dataset:     models.NewDataset(nil, []models.Ticket{ticket}),
		Extractor:   extractor.New(config.DefaultLexicon()),
		Config:      config.Default(),
		Now:         now,
	})

	assert.Empty(t, got.AgentWorkload)
	assert.Equal(t, models.TeamBalance{}, got.TeamBalance)
	assert.Equal(t, []models.SkillGap{{Skill: "Printer_Troubleshooting", Demand: 1, QualifiedAgents: 0}}, got.SkillGaps)
	assert.Equal(t, []string{
		"1 tickets remain unassigned - consider hiring or training additional agents",
		"Critical skill gap: Printer_Troubleshooting - high demand (1 tickets) but only 0 qualified agents",
	}, got.Recommendations)
}

func TestGenerateQuietRun(t *testing.T) {
	agents := []*models.Agent{
		{ID: "a1", Name: "Ann", Skills: map[string]int{"Printer_Troubleshooting": 9}, CurrentLoad: 1},
		{ID: "a2", Name: "Bob", Skills: map[string]int{"Printer_Troubleshooting": 8}, CurrentLoad: 1},
		{ID: "a3", Name: "Cy", Skills: map[string]int{"Printer_Troubleshooting": 7}, CurrentLoad: 1},
	}
	tickets := []models.Ticket{
		{ID: "T1", Description: "printer jam", CreatedAt: now},
		{ID: "T2", Description: "printer jam", CreatedAt: now},
		{ID: "T3", Description: "printer jam", CreatedAt: now},
	}
	var assignments []models.Assignment
	for i, id := range []string{"a1", "a2", "a3"} {
		assignments = append(assignments, models.Assignment{TicketID: tickets[i].ID, AgentID: strPtr(id), Priority: models.UrgencyLow})
	}

	got := analytics.Generate(analytics.Input{
		Assignments: assignments,
		Dataset:     models.NewDataset(agents, tickets),
		Extractor:   extractor.New(config.DefaultLexicon()),
		Config:      config.Default(),
		Now:         now,
	})

	assert.Empty(t, got.SkillGaps)
	assert.Empty(t, got.Recommendations)
	assert.Equal(t, "excellent", got.TeamBalance.Category)
	assert.Equal(t, 0.0, got.TeamBalance.BalanceScore)
}

func TestTeamBalanceCategories(t *testing.T) {
	tests := map[string]struct {
		loads    []int
		stdev    float64
		category string
	}{
		"SingleAgent": {loads: []int{4}, stdev: 0, category: "excellent"},
		"Even":        {loads: []int{3, 3, 3}, stdev: 0, category: "excellent"},
		"Good":        {loads: []int{1, 2, 3}, stdev: 1, category: "good"},
		"Fair":        {loads: []int{0, 2, 4}, stdev: 2, category: "fair"},
		"Poor":        {loads: []int{0, 3, 6}, stdev: 3, category: "poor"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var agents []*models.Agent
			for i, load := range tt.loads {
				agents = append(agents, &models.Agent{ID: fmt.Sprintf("a%d", i), CurrentLoad: load})
			}
			got := analytics.Generate(analytics.Input{
				Dataset:   models.NewDataset(agents, nil),
				Extractor: extractor.New(config.DefaultLexicon()),
				Config:    config.Default(),
				Now:       now,
			})
			assert.InDelta(t, tt.stdev, got.TeamBalance.BalanceScore, 1e-9)
			assert.Equal(t, tt.category, got.TeamBalance.Category)
		})
	}
}

func TestCapacityStatus(t *testing.T) {
	tests := map[string]struct {
		pct      float64
		expected string
	}{
		"Overloaded": {pct: 90, expected: "overloaded"},
		"Busy":       {pct: 70, expected: "busy"},
		"Moderate":   {pct: 40, expected: "moderate"},
		"Available":  {pct: 39.9, expected: "available"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analytics.CapacityStatus(tt.pct))
		})
	}
}

func TestRankDemand(t *testing.T) {
	got := analytics.RankDemand(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []string{"c", "a", "b"}, got)
}
