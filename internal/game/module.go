// internal/game/module.go
//
// Module is the host-side handle on a session: an identifier, an owner,
// and a lock that serializes submissions arriving from concurrent
// requests. The session underneath stays single-threaded.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/robalobadob/notthefan/internal/morse"
	"github.com/robalobadob/notthefan/internal/words"
)

// Module is one served puzzle instance.
type Module struct {
	ID        string
	Owner     string // user id, empty for guests
	CreatedAt time.Time

	mu      sync.Mutex
	session *Session
}

// HostFunc builds the host for a module once its id is known.
type HostFunc func(id string) Host

// NewModule creates a module with a crypto-seeded random source.
func NewModule(tbl *words.Table, cfg Config, owner string, hostFor HostFunc, opts ...Option) (*Module, error) {
	rng, err := NewSeededRandom()
	if err != nil {
		return nil, err
	}
	id := randomID()
	var host Host = NopHost{}
	if hostFor != nil {
		host = hostFor(id)
	}
	opts = append(opts, func(s *Session) { s.log = s.log.With().Str("module", id).Logger() })
	s, err := NewSession(tbl, rng, cfg, host, opts...)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Module{ID: id, Owner: owner, CreatedAt: time.Now().UTC(), session: s}, nil
}

// Submit applies one symbol and returns the resulting snapshot.
func (m *Module) Submit(sym morse.Symbol) (Result, State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.session.Submit(sym)
	return r, m.session.State()
}

// Command parses and plays a text command.
func (m *Module) Command(text string) ([]Result, State, error) {
	seq, err := ParseCommand(text)
	if err != nil {
		return nil, m.State(), err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	res := Play(m.session, seq)
	return res, m.session.State(), nil
}

// State returns a snapshot.
func (m *Module) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.State()
}

// Actuator returns the latest fan target.
func (m *Module) Actuator() ActuatorTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Actuator()
}

// Reveal returns the live solution and the code being matched.
// Only debug surfaces call it.
func (m *Module) Reveal() (Solution, []morse.Symbol) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Solution(), m.session.ExpectedEncoding()
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
