package petlookup

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// mockLookup answers from funcs so tests control timing and outcome
type mockLookup struct {
	getByID  func(ctx context.Context, id string) (*PetRecord, error)
	counters func(ctx context.Context, t PetType) ([]PetRecord, error)
}

func (m *mockLookup) GetByID(ctx context.Context, id string) (*PetRecord, error) {
	return m.getByID(ctx, id)
}

func (m *mockLookup) ListDoubleCounters(ctx context.Context, t PetType) ([]PetRecord, error) {
	return m.counters(ctx, t)
}

func petFound(rec PetRecord) func(context.Context, string) (*PetRecord, error) {
	return func(context.Context, string) (*PetRecord, error) {
		r := rec
		return &r, nil
	}
}

func countersFound(recs []PetRecord) func(context.Context, PetType) ([]PetRecord, error) {
	return func(context.Context, PetType) ([]PetRecord, error) {
		return recs, nil
	}
}

var (
	miniTyrael = PetRecord{ID: 42, Name: "Mini Tyrael", Type: Humanoid}
	arcaneEye  = PetRecord{ID: 68819, Name: "Arcane Eye", Type: Magic}
	errBoom    = errors.New("boom")
	ignoreRaw  = cmpopts.IgnoreFields(PetRecord{}, "Raw")
)

func TestController_InitialState(t *testing.T) {
	c := NewController(&mockLookup{}, nil)
	s := c.Snapshot()

	if s.PetTypeInput != Aquatic {
		t.Errorf("PetTypeInput = %v, want Aquatic", s.PetTypeInput)
	}
	if s.SelectedPet != nil || s.CounterResults != nil || s.Err != nil || s.Loading {
		t.Errorf("initial state not idle: %+v", s)
	}
	if s.PetPhase != PhaseIdle || s.CounterPhase != PhaseIdle {
		t.Errorf("phases = %v/%v, want idle/idle", s.PetPhase, s.CounterPhase)
	}
	if s.CanFetchPet() {
		t.Error("CanFetchPet with empty id should be false")
	}
	if !s.CanFetchCounters() {
		t.Error("CanFetchCounters should be true when idle")
	}
}

func TestController_FetchPetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := NewController(&mockLookup{getByID: petFound(miniTyrael)}, nil)
		c.FetchPetByID(ctx, "42")

		s := c.Snapshot()
		if diff := cmp.Diff(&miniTyrael, s.SelectedPet, ignoreRaw); diff != "" {
			t.Errorf("SelectedPet mismatch (-want +got):\n%s", diff)
		}
		if s.Err != nil {
			t.Errorf("Err = %v, want nil", s.Err)
		}
		if s.Loading {
			t.Error("Loading should be false after settlement")
		}
		if s.PetPhase != PhaseSuccess {
			t.Errorf("PetPhase = %v, want success", s.PetPhase)
		}
		if s.PetIDInput != "42" {
			t.Errorf("PetIDInput = %q", s.PetIDInput)
		}
	})

	t.Run("failure clears previous pet", func(t *testing.T) {
		fail := false
		lk := &mockLookup{getByID: func(ctx context.Context, id string) (*PetRecord, error) {
			if fail {
				return nil, &HTTPError{Path: PathGetByID, StatusCode: 404}
			}
			r := miniTyrael
			return &r, nil
		}}
		c := NewController(lk, nil)
		c.FetchPetByID(ctx, "42")
		fail = true
		c.FetchPetByID(ctx, "9999")

		s := c.Snapshot()
		if s.SelectedPet != nil {
			t.Errorf("SelectedPet = %+v, want nil", s.SelectedPet)
		}
		if !strings.Contains(s.ErrorMessage(), "404") {
			t.Errorf("ErrorMessage = %q, want 404", s.ErrorMessage())
		}
		if s.Loading {
			t.Error("Loading stuck after failure")
		}
		if s.PetPhase != PhaseFailed {
			t.Errorf("PetPhase = %v, want failed", s.PetPhase)
		}
	})

	t.Run("begin clears result and error before settling", func(t *testing.T) {
		c := NewController(&mockLookup{
			getByID:  petFound(miniTyrael),
			counters: func(context.Context, PetType) ([]PetRecord, error) { return nil, errBoom },
		}, nil)
		c.FetchPetByID(ctx, "42")
		c.FetchDoubleCounters(ctx, Beast)
		if c.Snapshot().Err == nil {
			t.Fatal("expected counter error")
		}

		pending := c.BeginPetLookup("43")
		s := c.Snapshot()
		if s.SelectedPet != nil || s.Err != nil {
			t.Errorf("begin left stale data: pet=%v err=%v", s.SelectedPet, s.Err)
		}
		if !s.Loading || s.PetPhase != PhaseLoading {
			t.Errorf("Loading=%v PetPhase=%v, want true/loading", s.Loading, s.PetPhase)
		}
		if s.CounterPhase != PhaseIdle {
			t.Errorf("CounterPhase = %v, want idle once its error is cleared", s.CounterPhase)
		}
		if s.CanFetchPet() || s.CanFetchCounters() {
			t.Error("triggers should be disabled while loading")
		}

		pending(ctx)
		if c.Snapshot().Loading {
			t.Error("Loading should be false after settlement")
		}
	})

	t.Run("panic in lookup still settles", func(t *testing.T) {
		c := NewController(&mockLookup{getByID: func(context.Context, string) (*PetRecord, error) {
			panic("kaboom")
		}}, nil)
		c.FetchPetByID(ctx, "1")

		s := c.Snapshot()
		if s.Loading {
			t.Error("Loading stuck after panic")
		}
		if !strings.Contains(s.ErrorMessage(), "kaboom") {
			t.Errorf("ErrorMessage = %q", s.ErrorMessage())
		}
	})
}

func TestController_FetchDoubleCounters(t *testing.T) {
	ctx := context.Background()

	t.Run("results in order", func(t *testing.T) {
		want := []PetRecord{arcaneEye, miniTyrael}
		c := NewController(&mockLookup{counters: countersFound(want)}, nil)
		c.FetchDoubleCounters(ctx, Flying)

		s := c.Snapshot()
		if diff := cmp.Diff(want, s.CounterResults, ignoreRaw); diff != "" {
			t.Errorf("CounterResults mismatch (-want +got):\n%s", diff)
		}
		if s.PetTypeInput != Flying {
			t.Errorf("PetTypeInput = %v, want Flying", s.PetTypeInput)
		}
	})

	t.Run("empty result is loaded", func(t *testing.T) {
		c := NewController(&mockLookup{counters: countersFound(nil)}, nil)
		c.FetchDoubleCounters(ctx, Dragonkin)

		s := c.Snapshot()
		if !s.CountersLoaded() {
			t.Fatal("CountersLoaded = false, want true")
		}
		if len(s.CounterResults) != 0 {
			t.Errorf("len = %d, want 0", len(s.CounterResults))
		}
		if s.Err != nil {
			t.Errorf("Err = %v", s.Err)
		}
		if s.CounterPhase != PhaseSuccess {
			t.Errorf("CounterPhase = %v", s.CounterPhase)
		}
	})

	t.Run("failure clears results", func(t *testing.T) {
		fail := false
		lk := &mockLookup{counters: func(context.Context, PetType) ([]PetRecord, error) {
			if fail {
				return nil, &NetworkError{Path: PathListDoubleCounters, Err: errors.New("connect: connection refused")}
			}
			return []PetRecord{arcaneEye}, nil
		}}
		c := NewController(lk, nil)
		c.FetchDoubleCounters(ctx, Beast)
		fail = true
		c.FetchDoubleCounters(ctx, Beast)

		s := c.Snapshot()
		if s.CountersLoaded() {
			t.Errorf("CounterResults = %v, want nil", s.CounterResults)
		}
		if !strings.Contains(s.ErrorMessage(), "connection refused") {
			t.Errorf("ErrorMessage = %q", s.ErrorMessage())
		}
		if s.Loading {
			t.Error("Loading stuck after failure")
		}
	})
}

func TestController_OperationsAreIndependent(t *testing.T) {
	ctx := context.Background()
	c := NewController(&mockLookup{
		getByID:  petFound(miniTyrael),
		counters: countersFound([]PetRecord{arcaneEye}),
	}, nil)

	c.FetchPetByID(ctx, "42")
	c.FetchDoubleCounters(ctx, Flying)
	s := c.Snapshot()
	if s.SelectedPet == nil {
		t.Error("counter lookup cleared SelectedPet")
	}

	c.FetchPetByID(ctx, "42")
	s = c.Snapshot()
	if len(s.CounterResults) != 1 {
		t.Errorf("pet lookup changed CounterResults: %v", s.CounterResults)
	}
}

func TestController_LoadingSpansBothOperations(t *testing.T) {
	ctx := context.Background()
	c := NewController(&mockLookup{
		getByID:  petFound(miniTyrael),
		counters: countersFound([]PetRecord{arcaneEye}),
	}, nil)

	petPending := c.BeginPetLookup("42")
	counterPending := c.BeginCounterLookup(Flying)

	petPending(ctx)
	if !c.Snapshot().Loading {
		t.Error("Loading should stay true while counters are in flight")
	}
	counterPending(ctx)
	if c.Snapshot().Loading {
		t.Error("Loading should be false once both settle")
	}
}

func TestController_StaleSettlementDropped(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	lk := &mockLookup{getByID: func(ctx context.Context, id string) (*PetRecord, error) {
		if id == "1" {
			<-release
			return &PetRecord{ID: 1, Name: "Old", Type: Beast}, nil
		}
		return &PetRecord{ID: 2, Name: "New", Type: Beast}, nil
	}}
	c := NewController(lk, nil)

	first := c.BeginPetLookup("1")
	second := c.BeginPetLookup("2")

	done := make(chan struct{})
	go func() {
		first(ctx)
		close(done)
	}()

	second(ctx)
	close(release)
	<-done

	s := c.Snapshot()
	if s.SelectedPet == nil || s.SelectedPet.ID != 2 {
		t.Errorf("SelectedPet = %+v, want id 2", s.SelectedPet)
	}
	if s.Loading {
		t.Error("Loading should be false")
	}
}

func TestController_StaleSettlementKeepsLoading(t *testing.T) {
	ctx := context.Background()
	c := NewController(&mockLookup{counters: countersFound(nil)}, nil)

	first := c.BeginCounterLookup(Beast)
	second := c.BeginCounterLookup(Magic)

	first(ctx)
	s := c.Snapshot()
	if !s.Loading || s.CountersLoaded() {
		t.Errorf("stale settlement applied: loading=%v results=%v", s.Loading, s.CounterResults)
	}

	second(ctx)
	if c.Snapshot().Loading {
		t.Error("Loading should be false after latest settles")
	}
}

func TestController_Observers(t *testing.T) {
	ctx := context.Background()
	c := NewController(&mockLookup{getByID: petFound(miniTyrael)}, nil)

	var mu sync.Mutex
	var seen []LookupState
	unsubscribe := c.Subscribe(func(s LookupState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	})

	c.FetchPetByID(ctx, "42")

	mu.Lock()
	if len(seen) != 2 {
		t.Fatalf("got %d notifications, want 2", len(seen))
	}
	if !seen[0].Loading || seen[0].SelectedPet != nil {
		t.Errorf("first snapshot = %+v, want loading without pet", seen[0])
	}
	if seen[1].Loading || seen[1].SelectedPet == nil {
		t.Errorf("last snapshot = %+v, want settled with pet", seen[1])
	}
	mu.Unlock()

	unsubscribe()
	c.SetPetIDInput("7")

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Errorf("notified after unsubscribe: %d", len(seen))
	}
}

func TestController_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	c := NewController(&mockLookup{counters: countersFound([]PetRecord{arcaneEye})}, nil)
	c.FetchDoubleCounters(ctx, Flying)

	s := c.Snapshot()
	s.CounterResults[0].Name = "changed"

	if c.Snapshot().CounterResults[0].Name != "Arcane Eye" {
		t.Error("mutating a snapshot leaked into controller state")
	}
}

func TestController_Inputs(t *testing.T) {
	c := NewController(&mockLookup{}, nil)

	if err := c.SetPetTypeInput("Fish"); err == nil {
		t.Error("SetPetTypeInput accepted unknown type")
	}
	if err := c.SetPetTypeInput(Undead); err != nil {
		t.Fatalf("SetPetTypeInput: %v", err)
	}
	if got := c.CyclePetType(1); got != Aquatic {
		t.Errorf("CyclePetType(+1) from Undead = %v, want Aquatic", got)
	}
	if got := c.CyclePetType(-1); got != Undead {
		t.Errorf("CyclePetType(-1) from Aquatic = %v, want Undead", got)
	}

	c.SetPetIDInput("12")
	if !c.Snapshot().CanFetchPet() {
		t.Error("CanFetchPet should be true with an id and nothing loading")
	}
}

func TestController_EmptyPetIsMalformed(t *testing.T) {
	c := NewController(&mockLookup{getByID: func(context.Context, string) (*PetRecord, error) {
		return nil, nil
	}}, nil)
	c.FetchPetByID(context.Background(), "1")

	s := c.Snapshot()
	var me *MalformedError
	if !errors.As(s.Err, &me) {
		t.Fatalf("Err = %v, want *MalformedError", s.Err)
	}
	if s.PetPhase != PhaseFailed || s.SelectedPet != nil {
		t.Errorf("PetPhase = %v, SelectedPet = %v", s.PetPhase, s.SelectedPet)
	}
}

func TestController_ObserverMayReadState(t *testing.T) {
	c := NewController(&mockLookup{getByID: petFound(miniTyrael)}, nil)
	c.Subscribe(func(LookupState) {
		c.Snapshot()
	})

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.FetchPetByID(ctx, "42")
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.SetPetIDInput(strconv.Itoa(i))
			}
		}()
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("controller stalled while an observer read its state")
	}
	if c.Snapshot().Loading {
		t.Error("Loading stuck after all lookups settled")
	}
}

func TestController_ObserverOrderAndReentry(t *testing.T) {
	c := NewController(&mockLookup{}, nil)

	var seen []string
	c.Subscribe(func(s LookupState) {
		seen = append(seen, s.PetIDInput)
		if s.PetIDInput == "2" {
			// delivered once this call returns
			c.SetPetIDInput("from-observer")
			seen = append(seen, "returned")
		}
	})

	for _, id := range []string{"1", "2", "3"} {
		c.SetPetIDInput(id)
	}

	want := []string{"1", "2", "returned", "from-observer", "3"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("notification order mismatch (-want +got):\n%s", diff)
	}
}
