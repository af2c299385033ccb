package sink

import (
	"fmt"
	"sync"

	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// scopeStack tracks the scopes open on one sink. Scopes are sink-wide:
// every entry emitted while a scope is open carries its state, whatever
// goroutine emits it.
type scopeStack struct {
	mu     sync.Mutex
	nextID uint64
	open   []openScope
}

type openScope struct {
	id    uint64
	state any
}

func (s *scopeStack) push(state any) logging.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.open = append(s.open, openScope{id: s.nextID, state: state})
	return &scopeHandle{stack: s, id: s.nextID}
}

func (s *scopeStack) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sc := range s.open {
		if sc.id == id {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return
		}
	}
}

// states returns the open scope states, outermost first, rendered as text.
func (s *scopeStack) states() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.open) == 0 {
		return nil
	}
	out := make([]string, len(s.open))
	for i, sc := range s.open {
		out[i] = fmt.Sprint(sc.state)
	}
	return out
}

type scopeHandle struct {
	stack *scopeStack
	id    uint64
	once  sync.Once
}

func (h *scopeHandle) End() {
	h.once.Do(func() { h.stack.remove(h.id) })
}
