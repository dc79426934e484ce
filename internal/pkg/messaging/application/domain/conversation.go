package messaging

import "time"

// Conversation is a durable two-party messaging thread.
// UserLow/UserHigh hold the participant pair in canonical (lexicographic)
// order so the database can enforce one conversation per unordered pair.
type Conversation struct {
	ID        string    `db:"id"`
	UserLow   string    `db:"user_low"`
	UserHigh  string    `db:"user_high"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ParticipantIDs returns both member IDs.
func (c Conversation) ParticipantIDs() []string {
	return []string{c.UserLow, c.UserHigh}
}

// OtherParticipant returns the member that is not userID, or "" if userID is
// not part of the conversation.
func (c Conversation) OtherParticipant(userID string) string {
	switch userID {
	case c.UserLow:
		return c.UserHigh
	case c.UserHigh:
		return c.UserLow
	default:
		return ""
	}
}

// CanonicalPair orders two distinct user IDs into the (low, high) form used
// as the conversation pair key. A self-pair is a validation error, never a
// lookup that happens to come back empty.
func CanonicalPair(a, b string) (low, high string, err error) {
	if a == b {
		return "", "", ErrSelfConversation
	}
	if a < b {
		return a, b, nil
	}
	return b, a, nil
}
