package petlookup

// Phase is where one lookup operation is in its request cycle
type Phase int

const (
	PhaseIdle    Phase = iota // Never invoked
	PhaseLoading              // Request in flight
	PhaseSuccess              // Result stored
	PhaseFailed               // Error stored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LookupState is a point-in-time copy of everything the UI renders.
//
// SelectedPet and CounterResults are nil when absent. A successful counter
// lookup with no matches leaves CounterResults non-nil and empty.
type LookupState struct {
	PetIDInput   string
	PetTypeInput PetType

	SelectedPet    *PetRecord
	CounterResults []PetRecord

	Loading bool
	Err     error

	PetPhase     Phase
	CounterPhase Phase
}

// ErrorMessage returns the text of the last error, or ""
func (s LookupState) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// CountersLoaded distinguishes "no counters found" from "not looked up yet"
func (s LookupState) CountersLoaded() bool {
	return s.CounterResults != nil
}

// CanFetchPet reports whether the by-id trigger should be enabled
func (s LookupState) CanFetchPet() bool {
	return !s.Loading && s.PetIDInput != ""
}

// CanFetchCounters reports whether the counters trigger should be enabled
func (s LookupState) CanFetchCounters() bool {
	return !s.Loading
}

func (s LookupState) clone() LookupState {
	out := s
	if s.SelectedPet != nil {
		pet := *s.SelectedPet
		out.SelectedPet = &pet
	}
	if s.CounterResults != nil {
		out.CounterResults = make([]PetRecord, len(s.CounterResults))
		copy(out.CounterResults, s.CounterResults)
	}
	return out
}
