// Package storage keeps per-chat state of the Telegram delivery in memory.
package storage

import (
	"sync"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// Session is the browsing state of one chat.
type Session struct {
	Selection entities.Selection
	Limit     int                // word list size chosen by the user; 0 means default
	Question  *entities.Question // pending quiz question, if any
}

// SessionStorage provides in-memory storage for sessions by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]Session),
	}
}

// Get returns the session of a chat. Unknown chats get a zero session.
func (s *SessionStorage) Get(chatID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[chatID]
}

// SetSelection replaces the selection and drops any pending question,
// which belongs to the previous word list.
func (s *SessionStorage) SetSelection(chatID int64, sel entities.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[chatID]
	sess.Selection = sel
	sess.Question = nil
	s.sessions[chatID] = sess
}

// SetLimit stores the preferred word list size.
func (s *SessionStorage) SetLimit(chatID int64, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[chatID]
	sess.Limit = limit
	s.sessions[chatID] = sess
}

// SetQuestion stores the pending question of a chat.
func (s *SessionStorage) SetQuestion(chatID int64, q *entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[chatID]
	sess.Question = q
	s.sessions[chatID] = sess
}

// TakeQuestion returns and clears the pending question, so an answer is
// checked at most once.
func (s *SessionStorage) TakeQuestion(chatID int64) (*entities.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.Question == nil {
		return nil, false
	}

	q := sess.Question
	sess.Question = nil
	s.sessions[chatID] = sess
	return q, true
}

// PeekQuestion reports the pending question without clearing it.
func (s *SessionStorage) PeekQuestion(chatID int64) (*entities.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := s.sessions[chatID].Question
	return q, q != nil
}

// Delete forgets a chat.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
