package model

// IntentKind tags the classified meaning of one inbound message.
type IntentKind string

const (
	IntentGreeting    IntentKind = "greeting"
	IntentCountry     IntentKind = "country"
	IntentProduct     IntentKind = "product"
	IntentCategory    IntentKind = "category"
	IntentExpand      IntentKind = "expand"
	IntentAlternative IntentKind = "alternative"
	IntentFilter      IntentKind = "filter"
	IntentPII         IntentKind = "pii_detected"
	IntentBlocked     IntentKind = "blocked_category"
	IntentMedical     IntentKind = "medical"
	IntentOutOfScope  IntentKind = "out_of_scope"
	IntentUnknown     IntentKind = "unknown"
)

// Intent is produced once per inbound message and consumed once by the state
// machine. Only the fields relevant to the kind are set.
type Intent struct {
	Kind     IntentKind
	Language string // greeting: detected language code (es, en, fr)
	Country  string // country: ISO 3166-1 alpha-2 code
	Name     string // product or category name
	Criteria string // filter criteria
}
