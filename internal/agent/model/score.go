package model

// ScoreVector is the four-dimension plus aggregate product rating.
// Every dimension is clamped to [0,100]; Overall is a fixed weighted
// combination of the other four.
type ScoreVector struct {
	Health        int `json:"health"`
	Environmental int `json:"environmental"`
	Social        int `json:"social"`
	Animal        int `json:"animal"`
	Overall       int `json:"overall"`
}

// ScoreReasons carries one human-readable justification per dimension,
// rendered in the detailed view.
type ScoreReasons struct {
	Health        string `json:"health,omitempty"`
	Environmental string `json:"environmental,omitempty"`
	Social        string `json:"social,omitempty"`
	Animal        string `json:"animal,omitempty"`
}
