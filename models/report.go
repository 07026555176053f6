package models

import "time"

// Analytics summarizes a completed run.
type Analytics struct {
	Summary              Summary                  `json:"summary"`
	PriorityDistribution map[Urgency]int          `json:"priority_distribution"`
	AgentWorkload        map[string]AgentWorkload `json:"agent_workload"`
	SkillDemand          map[string]int           `json:"skill_demand"`
	SkillGaps            []SkillGap               `json:"skill_gaps"`
	Recommendations      []string                 `json:"recommendations"`
	TeamBalance          TeamBalance              `json:"team_balance"`
	AgeDistribution      map[string]int           `json:"age_distribution"`
}

// Summary holds the headline counts of a run.
type Summary struct {
	TotalTickets      int `json:"total_tickets"`
	TotalAgents       int `json:"total_agents"`
	AssignedTickets   int `json:"assigned_tickets"`
	UnassignedTickets int `json:"unassigned_tickets"`
}

// AgentWorkload is the end-of-run load of a single agent, keyed by agent id.
type AgentWorkload struct {
	Name               string  `json:"name"`
	TicketsAssigned    int     `json:"tickets_assigned"`
	PriorityLoad       float64 `json:"priority_load"`
	Utilization        string  `json:"utilization"`
	UtilizationPercent float64 `json:"utilization_percent"`
	RemainingCapacity  int     `json:"remaining_capacity"`
	Status             string  `json:"status"`
}

// SkillGap is a high-demand skill with too few proficient agents.
type SkillGap struct {
	Skill           string `json:"skill"`
	Demand          int    `json:"demand"`
	QualifiedAgents int    `json:"qualified_agents"`
}

// Stats is a descriptive summary of a sample.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Stdev  float64 `json:"stdev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// TeamBalance describes how evenly work was spread across agents.
type TeamBalance struct {
	Workload     Stats   `json:"workload_stats"`
	Experience   Stats   `json:"experience_stats"`
	BalanceScore float64 `json:"balance_score"`
	Category     string  `json:"balance_category"`
}

// Metadata identifies a run.
type Metadata struct {
	RunID           string    `json:"run_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	TotalTickets    int       `json:"total_tickets"`
	TotalAgents     int       `json:"total_agents"`
	AssignmentsMade int       `json:"assignments_made"`
}

// Report is the full output record handed to reporting consumers.
type Report struct {
	Metadata    Metadata     `json:"metadata"`
	Assignments []Assignment `json:"assignments"`
	Analytics   Analytics    `json:"analytics"`
}

// SimplifiedAssignment is the minimal view of an Assignment.
type SimplifiedAssignment struct {
	TicketID  string  `json:"ticket_id"`
	Title     string  `json:"title"`
	AgentID   *string `json:"assigned_agent_id"`
	Rationale string  `json:"rationale"`
}

// SimplifiedReport is the truncated view for lightweight consumers.
type SimplifiedReport struct {
	Assignments []SimplifiedAssignment `json:"assignments"`
}
