package collection

import (
	"encoding/json"
	"fmt"
)

// State tells callers how the collection reached its current contents, so
// an empty fetch can be told apart from a list emptied by deletes.
type State int

const (
	StateUnloaded State = iota
	StateEmptyResult
	StatePopulated
	StateDrained
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateEmptyResult:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateDrained:
		return "drained"
	default:
		return "error"
	}
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	for _, cand := range []State{StateUnloaded, StateEmptyResult, StatePopulated, StateDrained} {
		if cand.String() == str {
			*s = cand
			return nil
		}
	}
	return fmt.Errorf("unknown collection state %q", str)
}

// Loaded reports whether a fetch has been applied.
func (s State) Loaded() bool {
	return s != StateUnloaded
}
