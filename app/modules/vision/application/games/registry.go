package games

import (
	"fmt"
	"sort"
	"sync"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// Registry maps game ids to processors. Lookups are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	processors map[visiontypes.GameID]Processor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{processors: make(map[visiontypes.GameID]Processor)}
}

// NewDefaultRegistry creates a registry with every built-in game.
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	for _, p := range []Processor{
		NewCodGunGame(opts),
		NewCodHardpoint(opts),
		NewMarioKart(opts),
		NewSmashBros(opts),
	} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a processor. Registering the same game twice is an error.
func (r *Registry) Register(p Processor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processors[p.Game()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGame, p.Game())
	}
	r.processors[p.Game()] = p
	return nil
}

// Get returns the processor for a game.
func (r *Registry) Get(game visiontypes.GameID) (Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.processors[game]
	if !ok {
		return nil, &ImportError{
			Code:    CodeUnknownGame,
			Message: fmt.Sprintf("no processor registered for %q", game),
			Err:     ErrUnknownGame,
		}
	}
	return p, nil
}

// Games returns the registered game ids in sorted order.
func (r *Registry) Games() []visiontypes.GameID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]visiontypes.GameID, 0, len(r.processors))
	for id := range r.processors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
