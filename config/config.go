// Package config holds the tunable weights, keyword vocabularies and fixed
// lexicons used by a run, and loads user overrides on top of the defaults.
package config

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. ASSIGNER_MAX_LOAD_PER_AGENT.
const EnvPrefix = "ASSIGNER"

// Config is the flat key-value configuration of a run. The four weights are
// applied additively to agent scores and are not required to sum to 1.
type Config struct {
	MaxLoadPerAgent      int                 `mapstructure:"max_load_per_agent"`
	SkillMatchWeight     float64             `mapstructure:"skill_match_weight"`
	ExperienceWeight     float64             `mapstructure:"experience_weight"`
	WorkloadWeight       float64             `mapstructure:"workload_weight"`
	PriorityWeight       float64             `mapstructure:"priority_weight"`
	CriticalKeywords     []string            `mapstructure:"critical_keywords"`
	HighPriorityKeywords []string            `mapstructure:"high_priority_keywords"`
	SkillCategories      map[string][]string `mapstructure:"skill_categories"`
	ScoringWorkers       int                 `mapstructure:"scoring_workers"`

	Lexicon Lexicon `mapstructure:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxLoadPerAgent:      10,
		SkillMatchWeight:     0.4,
		ExperienceWeight:     0.2,
		WorkloadWeight:       0.2,
		PriorityWeight:       0.2,
		CriticalKeywords:     defaultCriticalKeywords(),
		HighPriorityKeywords: defaultHighPriorityKeywords(),
		SkillCategories:      defaultSkillCategories(),
		ScoringWorkers:       4,
		Lexicon:              DefaultLexicon(),
	}
}

// Load merges the file at path and ASSIGNER_* environment variables over the
// defaults. A missing, unreadable or malformed file is logged and ignored.
func Load(path string, logger zerolog.Logger) Config {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("config file ignored, using defaults")
			v = newViper()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Warn().Err(err).Msg("config could not be decoded, using defaults")
		cfg = Default()
	}
	cfg.Lexicon = DefaultLexicon()
	return cfg.sanitize(logger)
}

func newViper() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_load_per_agent", d.MaxLoadPerAgent)
	v.SetDefault("skill_match_weight", d.SkillMatchWeight)
	v.SetDefault("experience_weight", d.ExperienceWeight)
	v.SetDefault("workload_weight", d.WorkloadWeight)
	v.SetDefault("priority_weight", d.PriorityWeight)
	v.SetDefault("critical_keywords", d.CriticalKeywords)
	v.SetDefault("high_priority_keywords", d.HighPriorityKeywords)
	v.SetDefault("skill_categories", d.SkillCategories)
	v.SetDefault("scoring_workers", d.ScoringWorkers)
	return v
}

func (c Config) sanitize(logger zerolog.Logger) Config {
	if c.MaxLoadPerAgent <= 0 {
		logger.Warn().Int("max_load_per_agent", c.MaxLoadPerAgent).Msg("max load must be positive, using default")
		c.MaxLoadPerAgent = Default().MaxLoadPerAgent
	}
	if c.ScoringWorkers < 0 {
		c.ScoringWorkers = 0
	}
	for i, kw := range c.CriticalKeywords {
		c.CriticalKeywords[i] = strings.ToLower(kw)
	}
	for i, kw := range c.HighPriorityKeywords {
		c.HighPriorityKeywords[i] = strings.ToLower(kw)
	}
	return c
}

// CategoryOf returns the presentation category of a skill, or "other".
// When a skill belongs to several categories the alphabetically first wins.
func (c Config) CategoryOf(skill string) string {
	names := make([]string, 0, len(c.SkillCategories))
	for name := range c.SkillCategories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, s := range c.SkillCategories[name] {
			if strings.EqualFold(s, skill) {
				return name
			}
		}
	}
	return "other"
}

func defaultCriticalKeywords() []string {
	return []string{
		"critical", "urgent", "down", "outage", "security",
		"breach", "attack", "production", "business-critical",
	}
}

func defaultHighPriorityKeywords() []string {
	return []string{"failing", "error", "unable", "blocked", "stopped"}
}

func defaultSkillCategories() map[string][]string {
	return map[string][]string{
		"networking": {"Networking", "VPN_Troubleshooting", "Network_Security",
			"Network_Monitoring", "Network_Cabling", "DNS_Configuration"},
		"security": {"Network_Security", "Endpoint_Security", "Antivirus_Malware",
			"Phishing_Analysis", "Security_Audits", "SIEM_Logging"},
		"hardware": {"Hardware_Diagnostics", "Laptop_Repair", "Printer_Troubleshooting"},
		"cloud":    {"Cloud_AWS", "Cloud_Azure", "DevOps_CI_CD", "Kubernetes_Docker"},
		"windows": {"Windows_Server_2022", "Windows_OS", "Active_Directory",
			"Microsoft_365", "SharePoint_Online"},
		"database": {"Database_SQL", "ETL_Processes", "Data_Warehousing"},
	}
}
