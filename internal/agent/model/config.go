package model

import "time"

// ================ Config ================

// SessionConfig controls the per-field TTLs of the session store.
type SessionConfig struct {
	StateTTL    time.Duration `envconfig:"SESSION_STATE_TTL" default:"24h"`
	CountryTTL  time.Duration `envconfig:"SESSION_COUNTRY_TTL" default:"168h"`
	AnalysisTTL time.Duration `envconfig:"SESSION_ANALYSIS_TTL" default:"1h"`
	TraceTTL    time.Duration `envconfig:"SESSION_TRACE_TTL" default:"720h"`
}

// HistoryConfig controls the conversation-history repository.
type HistoryConfig struct {
	TTL      time.Duration `envconfig:"HISTORY_TTL" default:"24h"`
	MaxTurns int           `envconfig:"HISTORY_MAX_TURNS" default:"50"`
}

// AnalyzerConfig controls the external data-source clients.
type AnalyzerConfig struct {
	ProductBaseURL string        `envconfig:"PRODUCT_API_BASE_URL" default:"https://world.openfoodfacts.org/api/v2"`
	RecallBaseURL  string        `envconfig:"RECALL_API_BASE_URL" default:"https://api.fda.gov"`
	CallTimeout    time.Duration `envconfig:"ANALYZER_CALL_TIMEOUT" default:"10s"`

	// Rate limiting per user, from the assistant's global rules.
	MaxAnalysesPerMinute int `envconfig:"ANALYZER_MAX_PER_MINUTE" default:"3"`
}

// BotConfig controls orchestrator defaults.
type BotConfig struct {
	DefaultCountry  string `envconfig:"BOT_DEFAULT_COUNTRY" default:"US"`
	DefaultLanguage string `envconfig:"BOT_DEFAULT_LANGUAGE" default:"en"`
}
