package greeter

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ErrInvalidPoliteness is returned when parsing an unknown politeness level.
var ErrInvalidPoliteness = errors.New("invalid politeness")

// Politeness selects the greeting template. The zero value is Informal.
type Politeness int

const (
	Informal Politeness = iota
	Formal
)

// ParsePoliteness parses "formal" or "informal". The empty string is Informal.
func ParsePoliteness(s string) (Politeness, error) {
	switch s {
	case "", "informal":
		return Informal, nil
	case "formal":
		return Formal, nil
	default:
		return Informal, fmt.Errorf("%w: %q", ErrInvalidPoliteness, s)
	}
}

func (p Politeness) String() string {
	if p == Formal {
		return "formal"
	}
	return "informal"
}

func (p Politeness) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Politeness) UnmarshalText(b []byte) error {
	v, err := ParsePoliteness(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// JSONSchema describes Politeness as a closed string enum for tool listings.
func (Politeness) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        []any{Formal.String(), Informal.String()},
		Default:     Informal.String(),
		Description: "Desired politeness level.",
	}
}
