package services

import "sync"

type stateKind int

const (
	stateRegistering stateKind = iota
	stateAwaitingAPIInput
	stateSearching
)

type registerStep int

const (
	stepName registerStep = iota
	stepTaxID
	stepPhone
	stepContact
	stepEmail
)

// chatState is the per-chat record of the active flow. A chat with no entry
// in the store is idle.
type chatState struct {
	kind      stateKind
	step      registerStep // registering flow only
	draft     CompanyDraft // fields collected so far
	criterion string       // searching flow; empty until chosen
}

// stateStore owns the per-chat conversation state. Entries are created when a
// flow starts, removed on the flow's terminal input and never persisted.
// Lock serializes all handling for one chat so that concurrent transport
// deliveries cannot interleave a single chat's read-modify-write.
type stateStore struct {
	mu     sync.Mutex
	states map[int64]*chatState
	locks  map[int64]*sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{
		states: make(map[int64]*chatState),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Lock acquires the chat's serialization lock and returns its unlock func.
func (s *stateStore) Lock(chatID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *stateStore) Get(chatID int64) *chatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[chatID]
}

func (s *stateStore) Set(chatID int64, st *chatState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = st
}

func (s *stateStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}
