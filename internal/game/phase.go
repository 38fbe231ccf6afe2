package game

import (
	"encoding/json"
	"fmt"
)

// Phase is the stage of the round lifecycle.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDealing
	PhasePlaying
	PhaseDealerTurn
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseSetup:      "setup",
	PhaseDealing:    "dealing",
	PhasePlaying:    "playing",
	PhaseDealerTurn: "dealer-turn",
	PhaseGameOver:   "game-over",
}

// String returns the wire name of the phase
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase converts a wire name back into a Phase
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// MarshalJSON encodes the phase by name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a phase name
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
