// Package session holds per-conversation mutable context: the last routed
// intent and any slot still awaiting an answer. Turns for the same
// conversation are serialized through the conversation's own lock so that a
// pending-slot read-then-write can never race; different conversations
// proceed in parallel.
package session

import (
	"sync"

	"github.com/hualei/FinGenie/internal/models"
)

// State is the router-owned context for one conversation.
type State struct {
	ConversationID string        `json:"conversation_id"`
	LastIntent     models.Intent `json:"last_intent,omitempty"`
	PendingSlot    string        `json:"pending_slot,omitempty"`
}

// Conversation wraps a State with the lock that serializes its turns. The
// router locks it for the full duration of a turn.
type Conversation struct {
	mu    sync.Mutex
	State State
}

// Lock acquires the conversation for one turn.
func (c *Conversation) Lock() { c.mu.Lock() }

// Unlock releases the conversation.
func (c *Conversation) Unlock() { c.mu.Unlock() }

// Store maps conversation ids to their state.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{conversations: make(map[string]*Conversation)}
}

// Get returns the conversation for the id, creating fresh state on first
// sight of a new conversation id.
func (s *Store) Get(conversationID string) *Conversation {
	s.mu.RLock()
	conv, ok := s.conversations[conversationID]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok = s.conversations[conversationID]; ok {
		return conv
	}
	conv = &Conversation{State: State{ConversationID: conversationID}}
	s.conversations[conversationID] = conv
	return conv
}

// Reset drops all state for a conversation id.
func (s *Store) Reset(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
}

// Len reports how many conversations currently hold state.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
