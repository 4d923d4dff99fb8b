// Package fsm holds the conversation state machine: it interprets an intent
// against the session's current state and produces the next state plus either
// an immediate reply or a directive for the orchestrator.
package fsm

import (
	"time"

	"github.com/noura-assistant/server/internal/agent/model"
	"github.com/noura-assistant/server/internal/agent/templates"
)

// Action directs the orchestrator after a transition.
type Action string

const (
	ActionNone               Action = ""
	ActionAnalyze            Action = "analyze"             // run the product lookup
	ActionAnalyzeCategory    Action = "analyze_category"    // run a category search
	ActionAnalyzeFilter      Action = "analyze_filter"      // re-run the lookup with filter criteria
	ActionAnalyzeAlternative Action = "analyze_alternative" // look up the next suggestion for the last query
	ActionExpand             Action = "expand"              // render the cached last analysis
)

// Result is the outcome of a transition. Reply is empty when the action
// defers the answer to the analysis pipeline.
type Result struct {
	Next   model.State
	Action Action
	Reply  string
}

// Machine executes transitions against the static definition. It mutates the
// session in memory only; persistence is the caller's concern.
type Machine struct {
	def            *Definition
	render         *templates.Renderer
	defaultCountry string
}

// NewMachine builds a machine over the given definition.
func NewMachine(def *Definition, render *templates.Renderer, cfg model.BotConfig) *Machine {
	return &Machine{
		def:            def,
		render:         render,
		defaultCountry: cfg.DefaultCountry,
	}
}

// Definition exposes the static configuration for session normalization.
func (m *Machine) Definition() *Definition {
	return m.def
}

// Transition applies one intent to the session and returns the result. The
// session's state and activity timestamp are updated in place.
func (m *Machine) Transition(session *model.Session, it model.Intent) Result {
	res := m.dispatch(session, it)
	session.State = res.Next
	session.LastActivityAt = time.Now().UTC()
	return res
}

func (m *Machine) dispatch(session *model.Session, it model.Intent) Result {
	switch session.State {
	case model.StateInit:
		return m.fromInit(session, it)
	case model.StateAwaitingCountry:
		return m.fromAwaitingCountry(session, it)
	case model.StateReady:
		return m.fromReady(session, it)
	case model.StateAnalyzing:
		// analysis is in flight for this session; ask the user to wait
		return Result{Next: model.StateAnalyzing, Reply: m.render.BusyPrompt()}
	case model.StateResultsShown:
		return m.fromResultsShown(session, it)
	case model.StateCategoryResults:
		return m.fromCategoryResults(session, it)
	case model.StateAwaitingFilter:
		return m.fromAwaitingFilter(session, it)
	case model.StateError:
		return Result{Next: model.StateError, Reply: m.render.ErrGeneric()}
	default:
		// unknown state in the store; recover through the initial greeting
		return m.fromInit(session, it)
	}
}

// fromInit greets in the user's language and asks for the country,
// whatever the input was.
func (m *Machine) fromInit(session *model.Session, it model.Intent) Result {
	lang := it.Language
	if lang == "" {
		lang = session.Language
	}
	if lang == "" {
		lang = "en"
	}
	session.Language = lang
	return Result{Next: model.StateAwaitingCountry, Reply: m.render.Greeting(lang)}
}

func (m *Machine) fromAwaitingCountry(session *model.Session, it model.Intent) Result {
	switch it.Kind {
	case model.IntentBlocked:
		return Result{Next: model.StateAwaitingCountry, Reply: m.render.ErrBlocked()}
	case model.IntentCountry:
		session.Country = it.Country
		return Result{Next: model.StateReady, Reply: m.render.ReadyPrompt()}
	case model.IntentProduct:
		// proceed with a default country rather than blocking the analysis
		if session.Country == "" {
			session.Country = m.defaultCountry
		}
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyze}
	case model.IntentCategory:
		if session.Country == "" {
			session.Country = m.defaultCountry
		}
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeCategory}
	default:
		return Result{Next: model.StateAwaitingCountry, Reply: m.render.AskCountry()}
	}
}

func (m *Machine) fromReady(session *model.Session, it model.Intent) Result {
	switch it.Kind {
	case model.IntentPII:
		return Result{Next: model.StateReady, Reply: m.render.ErrPII()}
	case model.IntentMedical:
		return Result{Next: model.StateReady, Reply: m.render.ErrMedical()}
	case model.IntentBlocked:
		return Result{Next: model.StateReady, Reply: m.render.ErrBlocked()}
	case model.IntentOutOfScope:
		return Result{Next: model.StateReady, Reply: m.render.ErrOutOfScope()}
	case model.IntentProduct:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyze}
	case model.IntentCategory:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeCategory}
	case model.IntentFilter:
		// criteria without a results context is just a product query
		if it.Criteria == "" {
			return Result{Next: model.StateReady, Reply: m.render.Reprompt()}
		}
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyze}
	case model.IntentCountry:
		session.Country = it.Country
		return Result{Next: model.StateReady, Reply: m.render.ReadyPrompt()}
	default:
		return Result{Next: model.StateReady, Reply: m.render.Reprompt()}
	}
}

func (m *Machine) fromResultsShown(session *model.Session, it model.Intent) Result {
	switch it.Kind {
	case model.IntentExpand:
		return Result{Next: model.StateResultsShown, Action: ActionExpand}
	case model.IntentAlternative:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeAlternative}
	case model.IntentFilter:
		if it.Criteria == "" {
			return Result{Next: model.StateAwaitingFilter, Reply: m.render.FiltersPrompt()}
		}
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeFilter}
	case model.IntentBlocked:
		return Result{Next: model.StateResultsShown, Reply: m.render.ErrBlocked()}
	case model.IntentProduct:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyze}
	case model.IntentCategory:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeCategory}
	default:
		return Result{Next: model.StateResultsShown, Reply: m.render.AnotherPrompt()}
	}
}

func (m *Machine) fromCategoryResults(session *model.Session, it model.Intent) Result {
	switch it.Kind {
	case model.IntentBlocked:
		return Result{Next: model.StateCategoryResults, Reply: m.render.ErrBlocked()}
	case model.IntentProduct:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyze}
	case model.IntentCategory:
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeCategory}
	case model.IntentFilter:
		if it.Criteria == "" {
			return Result{Next: model.StateAwaitingFilter, Reply: m.render.FiltersPrompt()}
		}
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeFilter}
	default:
		return Result{Next: model.StateCategoryResults, Reply: m.render.AnotherPrompt()}
	}
}

func (m *Machine) fromAwaitingFilter(session *model.Session, it model.Intent) Result {
	switch it.Kind {
	case model.IntentFilter:
		if it.Criteria == "" {
			return Result{Next: model.StateAwaitingFilter, Reply: m.render.FiltersPrompt()}
		}
		return Result{Next: model.StateAnalyzing, Action: ActionAnalyzeFilter}
	default:
		// anything else cancels the filter selection
		return Result{Next: model.StateResultsShown, Reply: m.render.AnotherPrompt()}
	}
}
