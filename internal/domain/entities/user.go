package entities

import "time"

// User represents bot user.
type User struct {
	ID        int64 // Telegram user ID
	ChatID    int64
	Username  string
	FirstName string
	CreatedAt time.Time
}

func NewUser(id, chatID int64, username, firstName string) *User {
	return &User{
		ID:        id,
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		CreatedAt: time.Now(),
	}
}
