package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPairOrdersLexicographically(t *testing.T) {
	low, high, err := CanonicalPair("bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", low)
	assert.Equal(t, "bob", high)

	// Same result regardless of argument order.
	low2, high2, err := CanonicalPair("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, low, low2)
	assert.Equal(t, high, high2)
}

func TestCanonicalPairRejectsSelfPair(t *testing.T) {
	_, _, err := CanonicalPair("alice", "alice")
	assert.ErrorIs(t, err, ErrSelfConversation)
}

func TestOtherParticipant(t *testing.T) {
	c := Conversation{UserLow: "alice", UserHigh: "bob"}

	assert.Equal(t, "bob", c.OtherParticipant("alice"))
	assert.Equal(t, "alice", c.OtherParticipant("bob"))
	assert.Equal(t, "", c.OtherParticipant("mallory"))
}
