// Package extractor derives the skills a ticket requires from its text.
package extractor

import (
	"math"
	"sort"
	"strings"
	"sync"

	"ticket-assigner/config"
	"ticket-assigner/metrics"
	"ticket-assigner/models"
)

// Stats counts cache behaviour of an Extractor.
type Stats struct {
	Hits   int
	Misses int
}

// Extractor computes skill requirements and caches them by ticket id for the
// lifetime of the Extractor. Create one per run.
type Extractor struct {
	lexicon config.Lexicon

	mu    sync.Mutex
	cache map[string]models.Requirements
	stats Stats
}

// New returns an Extractor with an empty cache.
func New(lexicon config.Lexicon) *Extractor {
	return &Extractor{
		lexicon: lexicon,
		cache:   make(map[string]models.Requirements),
	}
}

// Extract returns the requirements of t. The first call for a ticket id scans
// the lexicon; later calls return the cached result unchanged.
func (e *Extractor) Extract(t models.Ticket) models.Requirements {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reqs, ok := e.cache[t.ID]; ok {
		e.stats.Hits++
		metrics.SkillCacheHits.Inc()
		return clone(reqs)
	}

	reqs := Compute(t.Text(), e.lexicon)
	e.cache[t.ID] = reqs
	e.stats.Misses++
	metrics.SkillCacheMisses.Inc()
	return clone(reqs)
}

// Stats returns a snapshot of the cache counters.
func (e *Extractor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Compute scores every lexicon skill against lower-cased text. A skill's
// weight is the fraction of its triggers found as substrings, capped at 1.
// Skills without a match are omitted. The result is ordered by weight, then
// by lexicon position.
func Compute(text string, lexicon config.Lexicon) models.Requirements {
	reqs := models.Requirements{}
	for _, s := range lexicon.Skills {
		if len(s.Triggers) == 0 {
			continue
		}
		count := 0
		for _, trigger := range s.Triggers {
			if strings.Contains(text, trigger) {
				count++
			}
		}
		if count > 0 {
			reqs = append(reqs, models.Requirement{
				Skill:  s.Skill,
				Weight: math.Min(float64(count)/float64(len(s.Triggers)), 1.0),
			})
		}
	}

	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].Weight > reqs[j].Weight
	})
	return reqs
}

func clone(reqs models.Requirements) models.Requirements {
	return append(models.Requirements{}, reqs...)
}
