package models

import (
	"strings"
	"time"
)

// Availability is the status an agent reports for the run.
// Only AvailabilityAvailable is treated specially by scoring.
type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityUnavailable Availability = "Unavailable"
	AvailabilityOnLeave     Availability = "On Leave"
	AvailabilityBusy        Availability = "Busy"
)

// Urgency is the discrete level derived from a priority score.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// Urgencies lists the levels from most to least urgent.
var Urgencies = []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}

// Performance holds historical resolution counters. They are read-only
// inputs; nothing in a run updates them.
type Performance struct {
	Resolved int
	Total    int
}

// Agent is a support agent loaded from the dataset. CurrentLoad,
// AssignedTickets and CurrentPriorityLoad are owned by the scheduler.
type Agent struct {
	ID              string
	Name            string
	Skills          map[string]int
	ExperienceLevel int
	Availability    Availability
	Performance     Performance

	CurrentLoad         int
	AssignedTickets     []string
	CurrentPriorityLoad float64
}

// IsAvailable reports whether the agent is in the Available state.
func (a *Agent) IsAvailable() bool {
	return a.Availability == AvailabilityAvailable
}

// Ticket is an incoming support request. Tickets are immutable once loaded.
type Ticket struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

// Text returns the lower-cased title and description joined by a space.
func (t Ticket) Text() string {
	return strings.ToLower(t.Title + " " + t.Description)
}

// TicketPriority is the urgency snapshot computed once per ticket per run.
type TicketPriority struct {
	TicketID       string  `json:"ticket_id"`
	Score          float64 `json:"priority_score"`
	Urgency        Urgency `json:"urgency_level"`
	BusinessImpact float64 `json:"business_impact"`
	AffectedUsers  int     `json:"affected_users"`
	SecurityRisk   float64 `json:"security_risk"`
	TimeUrgency    float64 `json:"time_urgency"`
}

// Requirement is a skill inferred from ticket text with an importance in [0,1].
type Requirement struct {
	Skill  string
	Weight float64
}

// Requirements is an ordered, sparse set of required skills.
type Requirements []Requirement

// Names returns up to n skill names in order. n <= 0 returns all of them.
func (r Requirements) Names(n int) []string {
	if n <= 0 || n > len(r) {
		n = len(r)
	}
	names := make([]string, 0, n)
	for _, req := range r[:n] {
		names = append(names, req.Skill)
	}
	return names
}

// Assignment is the decision recorded for one ticket. AgentID is nil when
// the ticket could not be assigned.
type Assignment struct {
	TicketID       string    `json:"ticket_id"`
	Title          string    `json:"title"`
	AgentID        *string   `json:"assigned_agent_id"`
	AgentName      string    `json:"assigned_agent_name"`
	Priority       Urgency   `json:"priority"`
	PriorityScore  float64   `json:"priority_score"`
	BusinessImpact float64   `json:"business_impact"`
	AffectedUsers  int       `json:"affected_users"`
	SecurityRisk   float64   `json:"security_risk"`
	MatchScore     float64   `json:"agent_match_score"`
	Rationale      string    `json:"rationale"`
	RequiredSkills []string  `json:"required_skills"`
	MatchedSkills  []string  `json:"agent_skills_matched"`
	BackupAgents   []string  `json:"backup_agents,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Assigned reports whether an agent was chosen.
func (a Assignment) Assigned() bool {
	return a.AgentID != nil
}
