package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	customerrors "ticket-assigner/errors"
	"ticket-assigner/metrics"
	"ticket-assigner/models"
)

type rawDataset struct {
	Agents  []rawAgent  `json:"agents" validate:"required,dive"`
	Tickets []rawTicket `json:"tickets" validate:"required,dive"`
}

type rawAgent struct {
	AgentID            *string         `json:"agent_id" validate:"required"`
	Name               string          `json:"name"`
	Skills             map[string]int  `json:"skills" validate:"required"`
	ExperienceLevel    int             `json:"experience_level"`
	AvailabilityStatus string          `json:"availability_status"`
	CurrentLoad        int             `json:"current_load"`
	Performance        *rawPerformance `json:"performance"`
}

type rawPerformance struct {
	Resolved int `json:"resolved"`
	Total    int `json:"total"`
}

type rawTicket struct {
	TicketID          *string `json:"ticket_id" validate:"required"`
	Title             string  `json:"title"`
	Description       *string `json:"description" validate:"required"`
	CreationTimestamp float64 `json:"creation_timestamp"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse reads a JSON dataset of the form {"agents": [...], "tickets": [...]}.
// The dataset is validated before anything is built; a dataset with missing
// required fields returns a *errors.ValidationError listing every problem.
// Duplicate ids keep the position of their first occurrence and the content
// of their last. Agents always start with no load: any current_load in the
// input is ignored.
func Parse(r io.Reader) (*models.Dataset, error) {
	start := time.Now()
	defer func() { metrics.LoaderDurationSeconds.Observe(time.Since(start).Seconds()) }()

	raw, problems, err := decode(r)
	if err != nil {
		metrics.LoaderErrorsTotal.WithLabelValues("decode").Inc()
		return nil, err
	}
	if len(problems) > 0 {
		metrics.LoaderErrorsTotal.WithLabelValues("validation").Inc()
		return nil, &customerrors.ValidationError{Problems: problems}
	}

	agents := make([]*models.Agent, 0, len(raw.Agents))
	for _, ra := range raw.Agents {
		agents = append(agents, toAgent(ra))
	}
	tickets := make([]models.Ticket, 0, len(raw.Tickets))
	for _, rt := range raw.Tickets {
		tickets = append(tickets, models.Ticket{
			ID:          *rt.TicketID,
			Title:       rt.Title,
			Description: *rt.Description,
			CreatedAt:   fromEpoch(rt.CreationTimestamp),
		})
	}

	metrics.LoaderRecordsTotal.WithLabelValues("agents").Add(float64(len(agents)))
	metrics.LoaderRecordsTotal.WithLabelValues("tickets").Add(float64(len(tickets)))
	return models.NewDataset(agents, tickets), nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &customerrors.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, &customerrors.LoadError{Path: path, Err: err}
	}
	return ds, nil
}

// Validate reports whether r holds a dataset the assigner can run on, and
// lists every problem found.
func Validate(r io.Reader) (bool, []string) {
	_, problems, err := decode(r)
	if err != nil {
		return false, []string{fmt.Sprintf("error loading data: %v", err)}
	}
	return len(problems) == 0, problems
}

// ValidateFile opens path and validates it.
func ValidateFile(path string) (bool, []string) {
	f, err := os.Open(path)
	if err != nil {
		return false, []string{fmt.Sprintf("error loading data: %v", err)}
	}
	defer f.Close()
	return Validate(f)
}

func decode(r io.Reader) (*rawDataset, []string, error) {
	var raw rawDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", customerrors.ErrDecode, err)
	}

	err := validate.Struct(raw)
	if err == nil {
		return &raw, nil, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %v", customerrors.ErrDecode, err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describeMissing(fe.Namespace()))
	}
	return &raw, problems, nil
}

// describeMissing turns "rawDataset.agents[2].skills" into
// "agents[2] missing 'skills'".
func describeMissing(namespace string) string {
	path := namespace
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return fmt.Sprintf("%s missing '%s'", path[:i], path[i+1:])
	}
	return fmt.Sprintf("missing '%s' key in data", path)
}

func toAgent(ra rawAgent) *models.Agent {
	availability := models.Availability(strings.TrimSpace(ra.AvailabilityStatus))
	if availability == "" {
		availability = models.AvailabilityAvailable
	}

	skills := make(map[string]int, len(ra.Skills))
	for name, level := range ra.Skills {
		skills[name] = level
	}

	agent := &models.Agent{
		ID:              *ra.AgentID,
		Name:            ra.Name,
		Skills:          skills,
		ExperienceLevel: ra.ExperienceLevel,
		Availability:    availability,
		AssignedTickets: []string{},
	}
	if ra.Performance != nil {
		agent.Performance = models.Performance{
			Resolved: ra.Performance.Resolved,
			Total:    ra.Performance.Total,
		}
	}
	return agent
}

func fromEpoch(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*1e9))
}
