package petlookup

import (
	"fmt"
	"strings"
)

// PetType is a battle pet family
type PetType string

const (
	Aquatic    PetType = "Aquatic"
	Beast      PetType = "Beast"
	Critter    PetType = "Critter"
	Dragonkin  PetType = "Dragonkin"
	Elemental  PetType = "Elemental"
	Flying     PetType = "Flying"
	Humanoid   PetType = "Humanoid"
	Magic      PetType = "Magic"
	Mechanical PetType = "Mechanical"
	Undead     PetType = "Undead"
)

var petTypes = [...]PetType{
	Aquatic, Beast, Critter, Dragonkin, Elemental,
	Flying, Humanoid, Magic, Mechanical, Undead,
}

// PetTypes returns the ten pet families in selection order
func PetTypes() []PetType {
	out := make([]PetType, len(petTypes))
	copy(out, petTypes[:])
	return out
}

// Valid reports whether t is one of the ten families
func (t PetType) Valid() bool {
	return t.index() >= 0
}

func (t PetType) index() int {
	for i, pt := range petTypes {
		if pt == t {
			return i
		}
	}
	return -1
}

func (t PetType) String() string {
	return string(t)
}

// ParsePetType matches a family name case-insensitively
func ParsePetType(s string) (PetType, error) {
	for _, pt := range petTypes {
		if strings.EqualFold(string(pt), strings.TrimSpace(s)) {
			return pt, nil
		}
	}
	return "", fmt.Errorf("unknown pet type %q", s)
}

// PetRecord is a pet as returned by the lookup service.
// Raw keeps the whole object so fields beyond id/name/type can be displayed.
type PetRecord struct {
	ID   int64
	Name string
	Type PetType
	Raw  []byte
}

func (p PetRecord) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Type)
}

// Error types

// NetworkError indicates the request never produced a response
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError indicates a non-2xx response
type HTTPError struct {
	Path       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Path)
}

// ParseError indicates a body that is not valid JSON
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedError indicates valid JSON that is not shaped like a pet record
type MalformedError struct {
	Path   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed response: %s: %s", e.Path, e.Reason)
}
