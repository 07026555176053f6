// Package priority turns ticket text and age into an urgency score and level.
package priority

import (
	"math"
	"strings"
	"time"

	"ticket-assigner/config"
	"ticket-assigner/models"
)

// Score weights of each factor.
const (
	criticalWeight       = 10
	highWeight           = 5
	businessImpactWeight = 8
	affectedUsersDivisor = 10
	securityWeight       = 9
	timeUrgencyWeight    = 3
)

// Lower bounds of each urgency tier, inclusive.
const (
	CriticalThreshold = 20.0
	HighThreshold     = 15.0
	MediumThreshold   = 10.0
)

// Calculator computes TicketPriority snapshots. It is deterministic for a
// fixed ticket and a fixed clock.
type Calculator struct {
	critical []string
	high     []string
	security []string
	now      func() time.Time
}

// NewCalculator builds a Calculator from the configured keyword lists. A nil
// clock means time.Now.
func NewCalculator(cfg config.Config, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{
		critical: cfg.CriticalKeywords,
		high:     cfg.HighPriorityKeywords,
		security: cfg.Lexicon.SecurityKeywords,
		now:      now,
	}
}

// Calculate returns the priority snapshot of t.
func (c *Calculator) Calculate(t models.Ticket) models.TicketPriority {
	text := t.Text()

	criticalCount := countPresent(text, c.critical)
	highCount := countPresent(text, c.high)
	impact := businessImpact(text)
	users := affectedUsers(text)

	security := 0.0
	if len(c.security) > 0 {
		security = math.Min(float64(countPresent(text, c.security))/float64(len(c.security)), 1.0)
	}

	// Future timestamps give a negative age and are deliberately not clamped.
	ageHours := c.now().Sub(t.CreatedAt).Hours()
	timeUrgency := math.Min(ageHours/24, 1.0)

	score := float64(criticalCount*criticalWeight) +
		float64(highCount*highWeight) +
		impact*businessImpactWeight +
		float64(users)/affectedUsersDivisor +
		security*securityWeight +
		timeUrgency*timeUrgencyWeight

	return models.TicketPriority{
		TicketID:       t.ID,
		Score:          score,
		Urgency:        Level(score),
		BusinessImpact: impact,
		AffectedUsers:  users,
		SecurityRisk:   security,
		TimeUrgency:    timeUrgency,
	}
}

// Level maps a priority score to its urgency tier.
func Level(score float64) models.Urgency {
	switch {
	case score >= CriticalThreshold:
		return models.UrgencyCritical
	case score >= HighThreshold:
		return models.UrgencyHigh
	case score >= MediumThreshold:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

// AgeCategory buckets a ticket age in hours.
func AgeCategory(hours float64) string {
	switch {
	case hours < 1:
		return "new"
	case hours < 4:
		return "recent"
	case hours < 24:
		return "pending"
	case hours < 72:
		return "aging"
	default:
		return "overdue"
	}
}

// businessImpact applies the first matching rule in order.
func businessImpact(text string) float64 {
	switch {
	case containsAny(text, "production", "business-critical"):
		return 1.0
	case containsAny(text, "public", "customer"):
		return 0.8
	case containsAny(text, "internal", "employee"):
		return 0.5
	default:
		return 0.3
	}
}

// affectedUsers applies the first matching rule in order.
func affectedUsers(text string) int {
	switch {
	case containsAny(text, "all", "everyone", "company"):
		return 100
	case containsAny(text, "department", "team", "multiple"):
		return 20
	case containsAny(text, "group"):
		return 10
	default:
		return 1
	}
}

func countPresent(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func containsAny(text string, words ...string) bool {
	return countPresent(text, words) > 0
}
