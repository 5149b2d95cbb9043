package petlookup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Lookup is the remote side of the controller
type Lookup interface {
	GetByID(ctx context.Context, id string) (*PetRecord, error)
	ListDoubleCounters(ctx context.Context, t PetType) ([]PetRecord, error)
}

// Pending performs an already-begun lookup and settles it
type Pending func(ctx context.Context)

// Controller owns the lookup state and runs the two lookup operations.
//
// Each operation moves Idle -> Loading -> Success|Failed and may be
// re-entered at any time. Only the most recently begun request of an
// operation is allowed to settle; older ones are dropped.
type Controller struct {
	lookup Lookup
	log    *slog.Logger

	mu    sync.Mutex
	state LookupState

	petGen, counterGen           uint64
	petInFlight, counterInFlight bool

	// snapshots waiting for delivery, in commit order; guarded by mu
	queue    []LookupState
	draining bool

	obsMu        sync.Mutex
	observers    []observer
	nextObserver int
}

type observer struct {
	id int
	fn func(LookupState)
}

// NewController creates a controller in the Idle state
func NewController(lookup Lookup, log *slog.Logger) *Controller {
	if log == nil {
		log = discardLogger()
	}
	return &Controller{
		lookup: lookup,
		log:    log,
		state: LookupState{
			PetTypeInput: petTypes[0],
		},
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() LookupState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots arrive one at a time in commit order, with no controller lock
// held, so fn may call any controller method. A change made from inside fn
// is delivered after fn returns.
func (c *Controller) Subscribe(fn func(LookupState)) (unsubscribe func()) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()

	id := c.nextObserver
	c.nextObserver++
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// commit queues a snapshot and releases c.mu. If no other goroutine is
// delivering, this one drains the queue until it is empty. Caller must
// hold c.mu.
func (c *Controller) commit() {
	c.queue = append(c.queue, c.state.clone())
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true

	for len(c.queue) > 0 {
		batch := c.queue
		c.queue = nil
		c.mu.Unlock()

		c.obsMu.Lock()
		observers := c.observers
		c.obsMu.Unlock()

		for _, snap := range batch {
			for _, o := range observers {
				o.fn(snap)
			}
		}

		c.mu.Lock()
	}

	c.draining = false
	c.mu.Unlock()
}

// SetPetIDInput records the raw identifier text
func (c *Controller) SetPetIDInput(id string) {
	c.mu.Lock()
	if c.state.PetIDInput == id {
		c.mu.Unlock()
		return
	}
	c.state.PetIDInput = id
	c.commit()
}

// SetPetTypeInput selects one of the ten families
func (c *Controller) SetPetTypeInput(t PetType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown pet type %q", t)
	}
	c.mu.Lock()
	if c.state.PetTypeInput == t {
		c.mu.Unlock()
		return nil
	}
	c.state.PetTypeInput = t
	c.commit()
	return nil
}

// CyclePetType moves the selection by delta, wrapping around
func (c *Controller) CyclePetType(delta int) PetType {
	c.mu.Lock()
	n := len(petTypes)
	idx := ((c.state.PetTypeInput.index()+delta)%n + n) % n
	t := petTypes[idx]
	c.state.PetTypeInput = t
	c.commit()
	return t
}

// FetchPetByID looks up a single pet and blocks until it settles
func (c *Controller) FetchPetByID(ctx context.Context, id string) {
	c.BeginPetLookup(id)(ctx)
}

// FetchDoubleCounters looks up the counters of t and blocks until it settles
func (c *Controller) FetchDoubleCounters(ctx context.Context, t PetType) {
	c.BeginCounterLookup(t)(ctx)
}

// BeginPetLookup enters Loading for the by-id operation and returns the
// request to run. The previous pet and any error are cleared immediately.
func (c *Controller) BeginPetLookup(id string) Pending {
	c.mu.Lock()
	c.petGen++
	gen := c.petGen
	c.petInFlight = true
	c.state.PetIDInput = id
	c.state.SelectedPet = nil
	c.state.PetPhase = PhaseLoading
	c.clearErr()
	c.state.Loading = true
	c.commit()

	c.log.Info("pet lookup started", "id", id, "gen", gen)

	return func(ctx context.Context) {
		var (
			pet *PetRecord
			err error
		)
		defer func() {
			if r := recover(); r != nil {
				pet, err = nil, fmt.Errorf("pet lookup: %v", r)
			}
			c.settlePet(gen, pet, err)
		}()
		pet, err = c.lookup.GetByID(ctx, id)
	}
}

// BeginCounterLookup enters Loading for the counters operation and
// returns the request to run. Previous results and any error are cleared.
func (c *Controller) BeginCounterLookup(t PetType) Pending {
	c.mu.Lock()
	c.counterGen++
	gen := c.counterGen
	c.counterInFlight = true
	if t.Valid() {
		c.state.PetTypeInput = t
	}
	c.state.CounterResults = nil
	c.state.CounterPhase = PhaseLoading
	c.clearErr()
	c.state.Loading = true
	c.commit()

	c.log.Info("counter lookup started", "type", t, "gen", gen)

	return func(ctx context.Context) {
		var (
			pets []PetRecord
			err  error
		)
		defer func() {
			if r := recover(); r != nil {
				pets, err = nil, fmt.Errorf("counter lookup: %v", r)
			}
			c.settleCounters(gen, pets, err)
		}()
		pets, err = c.lookup.ListDoubleCounters(ctx, t)
	}
}

// clearErr drops the shared error. An operation that had failed no longer
// shows anything, so it reads as Idle. Caller must hold c.mu.
func (c *Controller) clearErr() {
	c.state.Err = nil
	if c.state.PetPhase == PhaseFailed {
		c.state.PetPhase = PhaseIdle
	}
	if c.state.CounterPhase == PhaseFailed {
		c.state.CounterPhase = PhaseIdle
	}
}

func (c *Controller) settlePet(gen uint64, pet *PetRecord, err error) {
	c.mu.Lock()
	if gen != c.petGen {
		c.mu.Unlock()
		c.log.Debug("stale pet lookup dropped", "gen", gen, "latest", c.latestPetGen())
		return
	}

	if err == nil && pet == nil {
		err = &MalformedError{Path: PathGetByID, Reason: "no pet in response"}
	}

	c.petInFlight = false
	c.state.Loading = c.petInFlight || c.counterInFlight
	if err != nil {
		c.state.SelectedPet = nil
		c.state.Err = err
		c.state.PetPhase = PhaseFailed
		c.log.Warn("pet lookup failed", "gen", gen, "err", err)
	} else {
		c.state.SelectedPet = pet
		c.state.PetPhase = PhaseSuccess
		c.log.Info("pet lookup settled", "gen", gen, "id", pet.ID, "name", pet.Name)
	}
	c.commit()
}

func (c *Controller) settleCounters(gen uint64, pets []PetRecord, err error) {
	c.mu.Lock()
	if gen != c.counterGen {
		c.mu.Unlock()
		c.log.Debug("stale counter lookup dropped", "gen", gen, "latest", c.latestCounterGen())
		return
	}

	c.counterInFlight = false
	c.state.Loading = c.petInFlight || c.counterInFlight
	if err != nil {
		c.state.CounterResults = nil
		c.state.Err = err
		c.state.CounterPhase = PhaseFailed
		c.log.Warn("counter lookup failed", "gen", gen, "err", err)
	} else {
		if pets == nil {
			pets = []PetRecord{}
		}
		c.state.CounterResults = pets
		c.state.CounterPhase = PhaseSuccess
		c.log.Info("counter lookup settled", "gen", gen, "count", len(pets))
	}
	c.commit()
}

func (c *Controller) latestPetGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.petGen
}

func (c *Controller) latestCounterGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterGen
}
