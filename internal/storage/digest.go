package storage

import (
	"sync"
	"time"
)

// DigestMessage is the last review digest sent to a chat.
type DigestMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// DigestStorage remembers the last digest per chat so the previous one can
// be removed when a new one is sent.
type DigestStorage struct {
	mu       sync.Mutex
	messages map[int64]DigestMessage
}

func NewDigestStorage() *DigestStorage {
	return &DigestStorage{
		messages: make(map[int64]DigestMessage),
	}
}

// Swap stores the new digest message and returns the previous one, if any.
func (s *DigestStorage) Swap(chatID int64, messageID int) (prev DigestMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]
	s.messages[chatID] = DigestMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}

// Forget drops the stored digest of a chat.
func (s *DigestStorage) Forget(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, chatID)
}
