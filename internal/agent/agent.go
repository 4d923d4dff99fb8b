// Package agent wires the classifier, state machine, analysis pipeline and
// repositories into the single entry point the transport layer calls: one
// inbound message in, one reply text out.
package agent

import (
	"context"
	"sync"
	"time"

	"github.com/noura-assistant/server/internal/agent/analyzer"
	"github.com/noura-assistant/server/internal/agent/fsm"
	"github.com/noura-assistant/server/internal/agent/intent"
	"github.com/noura-assistant/server/internal/agent/model"
	"github.com/noura-assistant/server/internal/agent/score"
	"github.com/noura-assistant/server/internal/agent/templates"
	logx "github.com/noura-assistant/server/pkg/logger"
)

// analysisSources is the fixed citation list attached to every analysis.
var analysisSources = []string{
	"Open Food Facts (openfoodfacts.org)",
	"FDA Enforcement Reports (api.fda.gov)",
}

// redactedMessage replaces the inbound text in the history when the message
// carried personal data. The raw text is never written anywhere.
const redactedMessage = "[datos personales redactados]"

// Agent orchestrates one conversation turn end to end.
type Agent struct {
	sessions   model.SessionRepository
	history    model.HistoryRepository
	classifier *intent.Classifier
	machine    *fsm.Machine
	analyzer   *analyzer.Analyzer
	engine     *score.Engine
	render     *templates.Renderer
	limiter    *analyzer.UserLimiter

	// serializes turns per user so concurrent webhook deliveries cannot
	// interleave load/transition/save for the same session
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Config collects the agent's collaborators.
type Config struct {
	Sessions   model.SessionRepository
	History    model.HistoryRepository
	Classifier *intent.Classifier
	Machine    *fsm.Machine
	Analyzer   *analyzer.Analyzer
	Engine     *score.Engine
	Renderer   *templates.Renderer
	Limiter    *analyzer.UserLimiter
}

// New builds the agent.
func New(cfg Config) *Agent {
	return &Agent{
		sessions:   cfg.Sessions,
		history:    cfg.History,
		classifier: cfg.Classifier,
		machine:    cfg.Machine,
		analyzer:   cfg.Analyzer,
		engine:     cfg.Engine,
		render:     cfg.Renderer,
		limiter:    cfg.Limiter,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (a *Agent) userLock(userID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[userID] = l
	}
	return l
}

// Handle processes one inbound message and returns the reply text. It never
// propagates internal failures to the caller: anything unexpected lands the
// session in the error state with a generic reply.
func (a *Agent) Handle(ctx context.Context, userID, text string) (reply string) {
	lock := a.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var session *model.Session
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Any("panic", r).Str("userID", userID).Msg("recovered while handling message")
			reply = a.render.ErrGeneric()
			if session != nil {
				session.State = model.StateError
				session.LastActivityAt = time.Now().UTC()
				if err := a.sessions.SaveState(ctx, session); err != nil {
					logx.Error().Err(err).Str("userID", userID).Msg("failed to save error state")
				}
			}
		}
	}()

	// classify before anything touches storage so personal data is redacted
	// from the history, not persisted and then refused
	it := a.classifier.Classify(text)
	stored := text
	if it.Kind == model.IntentPII {
		stored = redactedMessage
	}
	if err := a.history.AddMessage(ctx, userID, model.UserMessage(stored)); err != nil {
		logx.Warn().Err(err).Str("userID", userID).Msg("failed to record user message")
	}

	loaded, err := a.loadSession(ctx, userID)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("session load failed")
		return a.render.ErrGeneric()
	}
	session = loaded

	prevState := session.State
	prevCountry := session.Country
	res := a.machine.Transition(session, it)

	reply = res.Reply
	if res.Action != fsm.ActionNone {
		reply = a.execute(ctx, session, it, res, text)
	}

	a.persist(ctx, session, it, prevState, prevCountry, stored)

	if err := a.history.AddMessage(ctx, userID, model.AssistantMessage(reply)); err != nil {
		logx.Warn().Err(err).Str("userID", userID).Msg("failed to record reply")
	}
	return reply
}

// loadSession fetches and normalizes the session, creating a fresh one for
// unknown users.
func (a *Agent) loadSession(ctx context.Context, userID string) (*model.Session, error) {
	session, err := a.sessions.LoadSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return model.NewSession(userID), nil
	}
	return a.machine.Definition().Normalize(session, time.Now().UTC()), nil
}

// execute runs the directive the state machine emitted.
func (a *Agent) execute(ctx context.Context, session *model.Session, it model.Intent, res fsm.Result, text string) string {
	switch res.Action {
	case fsm.ActionExpand:
		return a.expand(ctx, session)
	case fsm.ActionAnalyze:
		// filter criteria arriving outside a results context carry the query
		// in the raw text, not the intent name
		query := it.Name
		if query == "" {
			query = text
		}
		return a.analyze(ctx, session, query, "")
	case fsm.ActionAnalyzeCategory:
		return a.analyze(ctx, session, text, it.Name)
	case fsm.ActionAnalyzeFilter:
		return a.analyzeFiltered(ctx, session, it.Criteria)
	case fsm.ActionAnalyzeAlternative:
		return a.alternative(ctx, session)
	default:
		return res.Reply
	}
}

// analyze runs the concurrent lookup, scores the result and renders the
// report. category is non-empty for category searches and selects the
// listing view.
func (a *Agent) analyze(ctx context.Context, session *model.Session, query, category string) string {
	if a.limiter != nil && !a.limiter.Allow(session.UserID) {
		session.State = model.StateReady
		return a.render.ErrRateLimited()
	}

	result := a.analyzer.Analyze(ctx, query)

	switch result.Kind {
	case model.LookupGreeting:
		session.State = model.StateReady
		return a.render.Greeting(session.Language)
	case model.LookupLocation:
		session.State = model.StateReady
		session.Country = result.Country
		return a.render.ReadyPrompt()
	case model.LookupOutOfScope:
		session.State = model.StateReady
		return a.render.ErrOutOfScope()
	case model.LookupNotFound:
		session.State = model.StateReady
		return a.render.ErrNotFound()
	}

	analysis := a.buildAnalysis(result)

	if err := a.sessions.SaveAnalysis(ctx, session.UserID, analysis); err != nil {
		logx.Warn().Err(err).Str("userID", session.UserID).Msg("failed to cache analysis")
	}

	if category != "" {
		session.State = model.StateCategoryResults
		return a.render.CategoryResults(category, session.Country, analysis)
	}
	session.State = model.StateResultsShown
	return a.render.Summary(analysis)
}

// buildAnalysis scores a successful lookup and assembles the cacheable
// analysis record.
func (a *Agent) buildAnalysis(result model.LookupResult) *model.Analysis {
	return &model.Analysis{
		Query:      result.Query,
		Product:    *result.Product,
		Recall:     result.Recall,
		Scores:     a.engine.Score(*result.Product, result.Recall),
		Reasons:    a.engine.Reasons(*result.Product, result.Recall),
		Sources:    analysisSources,
		AnalyzedAt: time.Now().UTC(),
	}
}

// alternative re-runs the last query asking for the next suggestion. Without
// a cached analysis there is nothing to find alternatives to.
func (a *Agent) alternative(ctx context.Context, session *model.Session) string {
	last, err := a.sessions.LoadAnalysis(ctx, session.UserID)
	if err != nil {
		logx.Warn().Err(err).Str("userID", session.UserID).Msg("failed to load cached analysis")
	}
	if last == nil {
		session.State = model.StateReady
		return a.render.Reprompt()
	}
	if a.limiter != nil && !a.limiter.Allow(session.UserID) {
		session.State = model.StateResultsShown
		return a.render.ErrRateLimited()
	}

	result := a.analyzer.AnalyzeAlternative(ctx, last.Query)
	if result.Kind != model.LookupFound {
		session.State = model.StateResultsShown
		return a.render.ErrNoAlternative()
	}

	analysis := a.buildAnalysis(result)
	if err := a.sessions.SaveAnalysis(ctx, session.UserID, analysis); err != nil {
		logx.Warn().Err(err).Str("userID", session.UserID).Msg("failed to cache analysis")
	}
	session.State = model.StateResultsShown
	return a.render.Summary(analysis)
}

// analyzeFiltered re-runs the last lookup narrowed by the filter criteria.
// Without a cached analysis there is nothing to filter.
func (a *Agent) analyzeFiltered(ctx context.Context, session *model.Session, criteria string) string {
	last, err := a.sessions.LoadAnalysis(ctx, session.UserID)
	if err != nil {
		logx.Warn().Err(err).Str("userID", session.UserID).Msg("failed to load cached analysis")
	}
	if last == nil {
		session.State = model.StateReady
		return a.render.Reprompt()
	}
	return a.analyze(ctx, session, last.Query+" "+criteria, "")
}

// expand renders the detailed view from the cached analysis. An expired cache
// drops the user back to the ready prompt.
func (a *Agent) expand(ctx context.Context, session *model.Session) string {
	last, err := a.sessions.LoadAnalysis(ctx, session.UserID)
	if err != nil {
		logx.Warn().Err(err).Str("userID", session.UserID).Msg("failed to load cached analysis")
	}
	if last == nil {
		session.State = model.StateReady
		return a.render.Reprompt()
	}
	return a.render.Detailed(last)
}

// persist writes the post-turn session state, the country when it changed,
// and the audit trace. Persistence failures are logged, not surfaced.
func (a *Agent) persist(ctx context.Context, session *model.Session, it model.Intent, prevState model.State, prevCountry, text string) {
	if err := a.sessions.SaveState(ctx, session); err != nil {
		logx.Error().Err(err).Str("userID", session.UserID).Msg("failed to save session state")
	}
	if session.Country != "" && session.Country != prevCountry {
		if err := a.sessions.SaveCountry(ctx, session.UserID, session.Country); err != nil {
			logx.Error().Err(err).Str("userID", session.UserID).Msg("failed to save country")
		}
	}
	entry := model.TraceEntry{
		Timestamp: time.Now().UTC(),
		Action:    "turn",
		Data: map[string]any{
			"intent": string(it.Kind),
			"from":   string(prevState),
			"to":     string(session.State),
			"length": len(text),
		},
	}
	if err := a.sessions.AppendTrace(ctx, session.UserID, entry); err != nil {
		logx.Warn().Err(err).Str("userID", session.UserID).Msg("failed to append trace")
	}
}
