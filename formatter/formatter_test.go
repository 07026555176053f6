package formatter_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-assigner/config"
	"ticket-assigner/engine"
	"ticket-assigner/formatter"
	"ticket-assigner/models"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func scenario() (*models.Report, *models.Dataset) {
	ds := models.NewDataset(
		[]*models.Agent{{
			ID:              "A1",
			Name:            "Alice",
			Skills:          map[string]int{"Networking": 9, "Python_Scripting": 4},
			ExperienceLevel: 10,
			Availability:    models.AvailabilityAvailable,
		}},
		[]models.Ticket{
			{ID: "TB", Title: "Printer", Description: "out of paper", CreatedAt: now},
			{ID: "TA", Title: "Network down", Description: "for everyone, production outage", CreatedAt: now},
		},
	)
	report := engine.New(config.Default(), engine.WithClock(func() time.Time { return now })).Process(ds)
	return report, ds
}

func TestFormatJSON(t *testing.T) {
	report, _ := scenario()
	out, err := formatter.FormatJSON(report)
	require.NoError(t, err)

	var decoded struct {
		Metadata struct {
			RunID           string `json:"run_id"`
			AssignmentsMade int    `json:"assignments_made"`
		} `json:"metadata"`
		Assignments []map[string]any `json:"assignments"`
		Analytics   struct {
			Summary map[string]int `json:"summary"`
		} `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, report.Metadata.RunID, decoded.Metadata.RunID)
	assert.Equal(t, 2, decoded.Metadata.AssignmentsMade)
	require.Len(t, decoded.Assignments, 2)
	first := decoded.Assignments[0]
	assert.Equal(t, "TA", first["ticket_id"])
	assert.Equal(t, "A1", first["assigned_agent_id"])
	assert.Equal(t, "CRITICAL", first["priority"])
	assert.Equal(t, 48.0, first["priority_score"])
	assert.Equal(t, 7.1, first["agent_match_score"])
	assert.Equal(t, 2, decoded.Analytics.Summary["assigned_tickets"])
}

func TestRounded(t *testing.T) {
	report := &models.Report{Assignments: []models.Assignment{{
		PriorityScore:  12.3456,
		BusinessImpact: 0.333,
		SecurityRisk:   0.125,
		MatchScore:     7.0999999,
	}}}

	got := formatter.Rounded(report)
	assert.Equal(t, 12.35, got.Assignments[0].PriorityScore)
	assert.Equal(t, 0.33, got.Assignments[0].BusinessImpact)
	assert.Equal(t, 0.13, got.Assignments[0].SecurityRisk)
	assert.Equal(t, 7.1, got.Assignments[0].MatchScore)
	assert.Equal(t, 12.3456, report.Assignments[0].PriorityScore, "input left untouched")
}

func TestFormatSimplifiedJSON(t *testing.T) {
	report := &models.Report{Assignments: []models.Assignment{
		{TicketID: "T1", Title: "one", Rationale: "escalate"},
	}}
	out, err := formatter.FormatSimplifiedJSON(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"assignments": [
		{"ticket_id": "T1", "title": "one", "assigned_agent_id": null, "rationale": "escalate"}
	]}`, out)
}

func TestFormatCSV(t *testing.T) {
	report, _ := scenario()
	report.Assignments = append(report.Assignments, models.Assignment{
		TicketID:  "TX",
		Title:     "Orphan, with comma",
		AgentName: "UNASSIGNED",
		Priority:  models.UrgencyLow,
	})

	out, err := formatter.FormatCSV(report)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{
		"ticket_id", "title", "priority", "priority_score",
		"assigned_agent_id", "assigned_agent_name", "agent_match_score",
		"required_skills", "backup_agents", "rationale",
	}, rows[0])
	assert.Equal(t, []string{"TA", "Network down", "CRITICAL", "48.00", "A1", "Alice", "7.10", "Networking", ""}, rows[1][:9])
	assert.Equal(t, "TX", rows[3][0])
	assert.Equal(t, "Orphan, with comma", rows[3][1])
	assert.Equal(t, "", rows[3][4])
}

func TestFormatText(t *testing.T) {
	report, ds := scenario()
	out := formatter.FormatText(report, ds, config.Default())

	for _, want := range []string{
		"EXECUTIVE SUMMARY - TICKET ASSIGNMENT SYSTEM",
		"Run ID: " + report.Metadata.RunID,
		"Total Tickets: 2",
		"Successfully Assigned: 2 (100.0%)",
		"CRITICAL: 1 (50.0%)",
		"LOW: 1 (50.0%)",
		"Average: 20.0%",
		"CRITICAL SKILL GAPS:",
		"AGENT REPORT: Alice",
		"Agent ID: A1",
		"Current Load: 2",
		"Total Assigned: 2",
		"Networking [networking]: 9/10",
		"Python_Scripting [other]: 4/10",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Networking [networking]"), strings.Index(out, "Python_Scripting [other]"))
}

func TestFormatTextNoAgents(t *testing.T) {
	ds := models.NewDataset(nil, []models.Ticket{{ID: "T1", Description: "printer jam", CreatedAt: now}})
	report := engine.New(config.Default(), engine.WithClock(func() time.Time { return now })).Process(ds)

	out := formatter.FormatText(report, ds, config.Default())
	assert.Contains(t, out, "Unassigned: 1")
	assert.NotContains(t, out, "AGENT UTILIZATION")
	assert.NotContains(t, out, "AGENT REPORT")
	assert.Contains(t, out, "1 tickets remain unassigned")
}
