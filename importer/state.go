package importer

import "fmt"

// State is a step of the import state machine.
type State int

const (
	NotRequested State = iota
	Skipped
	Provisioning
	Staging
	ComputingCorpusStats
	NormalizingModel
	ComputingModelStats
	Done
	Failed
)

var stateNames = [...]string{
	NotRequested:         "not requested",
	Skipped:              "skipped",
	Provisioning:         "provisioning",
	Staging:              "staging",
	ComputingCorpusStats: "computing corpus stats",
	NormalizingModel:     "normalizing model",
	ComputingModelStats:  "computing model stats",
	Done:                 "done",
	Failed:               "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == Skipped || s == Done || s == Failed
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown import state %q", text)
}
