package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-assigner/config"
	"ticket-assigner/engine"
	"ticket-assigner/models"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func dataset(agents, tickets int) *models.Dataset {
	var as []*models.Agent
	for i := 0; i < agents; i++ {
		as = append(as, &models.Agent{
			ID:              fmt.Sprintf("A%d", i),
			Name:            fmt.Sprintf("Agent %d", i),
			Skills:          map[string]int{"Printer_Troubleshooting": 5 + i},
			ExperienceLevel: 5,
			Availability:    models.AvailabilityAvailable,
		})
	}
	var ts []models.Ticket
	for i := 0; i < tickets; i++ {
		ts = append(ts, models.Ticket{
			ID:          fmt.Sprintf("T%02d", i),
			Title:       "Printer",
			Description: "out of paper",
			CreatedAt:   now,
		})
	}
	return models.NewDataset(as, ts)
}

func TestProcess(t *testing.T) {
	e := engine.New(config.Default(), engine.WithClock(fixedClock))
	ds := dataset(2, 3)

	report := e.Process(ds)

	_, err := uuid.Parse(report.Metadata.RunID)
	require.NoError(t, err)
	assert.Equal(t, now, report.Metadata.GeneratedAt)
	assert.Equal(t, 3, report.Metadata.TotalTickets)
	assert.Equal(t, 2, report.Metadata.TotalAgents)
	assert.Equal(t, 3, report.Metadata.AssignmentsMade)
	assert.Len(t, report.Assignments, 3)
	assert.Equal(t, 3, report.Analytics.Summary.AssignedTickets)
	assert.Equal(t, 3, report.Analytics.SkillDemand["Printer_Troubleshooting"])

	other := e.Process(dataset(2, 3))
	assert.NotEqual(t, report.Metadata.RunID, other.Metadata.RunID)
	assert.Equal(t, report.Assignments, other.Assignments)
}

func TestProcessNoAgents(t *testing.T) {
	report := engine.New(config.Default(), engine.WithClock(fixedClock)).Process(dataset(0, 2))
	assert.Equal(t, 0, report.Metadata.AssignmentsMade)
	assert.Equal(t, 2, report.Analytics.Summary.UnassignedTickets)
	for _, a := range report.Assignments {
		assert.Nil(t, a.AgentID)
	}
}

func TestSimplify(t *testing.T) {
	tests := map[string]struct {
		tickets  int
		expected int
	}{
		"Empty":     {tickets: 0, expected: 0},
		"UnderCap":  {tickets: 4, expected: 4},
		"Truncated": {tickets: 15, expected: engine.SimplifiedLimit},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			report := engine.New(config.Default(), engine.WithClock(fixedClock)).Process(dataset(3, tt.tickets))
			got := engine.Simplify(report)

			require.Len(t, got.Assignments, tt.expected)
			assert.NotNil(t, got.Assignments)
			for i, s := range got.Assignments {
				full := report.Assignments[i]
				assert.Equal(t, full.TicketID, s.TicketID)
				assert.Equal(t, full.Title, s.Title)
				assert.Equal(t, full.AgentID, s.AgentID)
				assert.Equal(t, full.Rationale, s.Rationale)
			}
		})
	}
}
