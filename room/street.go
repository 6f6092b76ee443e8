package room

import "fmt"

// Street represents the betting round within a deal
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"PREFLOP", "FLOP", "TURN", "RIVER"}

func (s Street) String() string {
	if s < Preflop || s > River {
		return "UNKNOWN"
	}
	return streetNames[s]
}

// Next returns the street that follows s. River (and anything after it)
// stays on River; callers end the deal there instead of advancing.
func (s Street) Next() Street {
	switch s {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	default:
		return River
	}
}

// MarshalText encodes the street by name for snapshots
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street name from a snapshot
func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if name == string(text) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}
