package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ticket-assigner/config"
	"ticket-assigner/engine"
	"ticket-assigner/models"
)

const (
	ruleWidth     = 60
	topSkillCount = 5
	topGapCount   = 3
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#cdd6f4"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f9e2af"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086"))
)

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy of the report with every score rounded to two
// decimal places, the way the report is published.
func Rounded(r *models.Report) models.Report {
	out := *r
	out.Assignments = make([]models.Assignment, len(r.Assignments))
	for i, a := range r.Assignments {
		a.PriorityScore = Round2(a.PriorityScore)
		a.BusinessImpact = Round2(a.BusinessImpact)
		a.SecurityRisk = Round2(a.SecurityRisk)
		a.MatchScore = Round2(a.MatchScore)
		out.Assignments[i] = a
	}
	return out
}

// FormatJSON returns the indented JSON representation of the full report.
func FormatJSON(r *models.Report) (string, error) {
	jsonBytes, err := json.MarshalIndent(Rounded(r), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(jsonBytes), nil
}

// FormatSimplifiedJSON returns the indented JSON of the simplified view.
func FormatSimplifiedJSON(r *models.Report) (string, error) {
	jsonBytes, err := json.MarshalIndent(engine.Simplify(r), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding simplified report: %w", err)
	}
	return string(jsonBytes), nil
}

// FormatCSV returns one row per assignment in processing order.
func FormatCSV(r *models.Report) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{
		"ticket_id", "title", "priority", "priority_score",
		"assigned_agent_id", "assigned_agent_name", "agent_match_score",
		"required_skills", "backup_agents", "rationale",
	})

	for _, a := range Rounded(r).Assignments {
		agentID := ""
		if a.Assigned() {
			agentID = *a.AgentID
		}
		writer.Write([]string{
			a.TicketID,
			a.Title,
			string(a.Priority),
			fmt.Sprintf("%.2f", a.PriorityScore),
			agentID,
			a.AgentName,
			fmt.Sprintf("%.2f", a.MatchScore),
			strings.Join(a.RequiredSkills, "; "),
			strings.Join(a.BackupAgents, "; "),
			a.Rationale,
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}
	return sb.String(), nil
}

// FormatText renders the executive summary followed by one report per agent
// in dataset order. Agent skills are grouped under the categories of cfg.
func FormatText(r *models.Report, ds *models.Dataset, cfg config.Config) string {
	var sb strings.Builder
	sb.WriteString(formatSummary(r))
	for _, agent := range ds.Agents {
		sb.WriteString("\n")
		sb.WriteString(formatAgent(agent, r.Assignments, cfg))
	}
	return sb.String()
}

func formatSummary(r *models.Report) string {
	rule := ruleStyle.Render(strings.Repeat("=", ruleWidth))
	summary := r.Analytics.Summary

	var lines []string
	lines = append(lines,
		rule,
		titleStyle.Render("EXECUTIVE SUMMARY - TICKET ASSIGNMENT SYSTEM"),
		rule,
		fmt.Sprintf("Run ID: %s", r.Metadata.RunID),
		fmt.Sprintf("Report Generated: %s", r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05")),
		"",
		sectionStyle.Render("KEY METRICS:"),
		fmt.Sprintf("  • Total Tickets: %d", summary.TotalTickets),
		fmt.Sprintf("  • Successfully Assigned: %d (%.1f%%)",
			summary.AssignedTickets, percent(summary.AssignedTickets, summary.TotalTickets)),
		fmt.Sprintf("  • Unassigned: %d", summary.UnassignedTickets),
		"",
		sectionStyle.Render("PRIORITY DISTRIBUTION:"),
	)
	for _, u := range models.Urgencies {
		count := r.Analytics.PriorityDistribution[u]
		lines = append(lines, fmt.Sprintf("  • %s: %d (%.1f%%)", u, count, percent(count, summary.TotalTickets)))
	}

	if len(r.Analytics.AgentWorkload) > 0 {
		utils := make([]float64, 0, len(r.Analytics.AgentWorkload))
		for _, w := range r.Analytics.AgentWorkload {
			utils = append(utils, w.UtilizationPercent)
		}
		sort.Float64s(utils)
		sum := 0.0
		for _, u := range utils {
			sum += u
		}
		lines = append(lines,
			"",
			sectionStyle.Render("AGENT UTILIZATION:"),
			fmt.Sprintf("  • Average: %.1f%%", sum/float64(len(utils))),
			fmt.Sprintf("  • Highest: %.1f%%", utils[len(utils)-1]),
			fmt.Sprintf("  • Lowest: %.1f%%", utils[0]),
		)
	}

	if gaps := r.Analytics.SkillGaps; len(gaps) > 0 {
		lines = append(lines, "", sectionStyle.Render("CRITICAL SKILL GAPS:"))
		for i, gap := range gaps {
			if i == topGapCount {
				break
			}
			lines = append(lines, warnStyle.Render(fmt.Sprintf("  - %s: %d tickets, %d agents",
				gap.Skill, gap.Demand, gap.QualifiedAgents)))
		}
	}

	if recs := r.Analytics.Recommendations; len(recs) > 0 {
		lines = append(lines, "", sectionStyle.Render("RECOMMENDATIONS:"))
		for _, rec := range recs {
			lines = append(lines, "  • "+rec)
		}
	}

	lines = append(lines, "", rule)
	return strings.Join(lines, "\n") + "\n"
}

func formatAgent(agent *models.Agent, assignments []models.Assignment, cfg config.Config) string {
	byPriority := make(map[models.Urgency]int)
	total := 0
	for _, a := range assignments {
		if a.Assigned() && *a.AgentID == agent.ID {
			byPriority[a.Priority]++
			total++
		}
	}

	var lines []string
	lines = append(lines,
		sectionStyle.Render("AGENT REPORT: "+agent.Name),
		ruleStyle.Render(strings.Repeat("-", 40)),
		fmt.Sprintf("Agent ID: %s", agent.ID),
		fmt.Sprintf("Experience Level: %d", agent.ExperienceLevel),
		fmt.Sprintf("Availability: %s", agent.Availability),
		fmt.Sprintf("Current Load: %d", agent.CurrentLoad),
		fmt.Sprintf("Total Assigned: %d", total),
		"",
		"TOP SKILLS:",
	)
	for _, skill := range topSkills(agent.Skills, topSkillCount) {
		lines = append(lines, fmt.Sprintf("  • %s [%s]: %d/10", skill, cfg.CategoryOf(skill), agent.Skills[skill]))
	}

	lines = append(lines, "", "ASSIGNED TICKETS BY PRIORITY:")
	for _, u := range models.Urgencies {
		if count := byPriority[u]; count > 0 {
			lines = append(lines, fmt.Sprintf("  • %s: %d", u, count))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// topSkills returns up to n skills by level, highest first, ties by name.
func topSkills(skills map[string]int, n int) []string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if skills[names[i]] == skills[names[j]] {
			return names[i] < names[j]
		}
		return skills[names[i]] > skills[names[j]]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
