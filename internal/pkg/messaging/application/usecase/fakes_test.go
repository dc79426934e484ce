package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
)

// memConversationRepo is an in-memory ConversationRepository with the same
// pair-uniqueness behavior as the postgres adapter.
type memConversationRepo struct {
	mu      sync.Mutex
	byID    map[string]*messaging.Conversation
	touched []string
	items   []repository.ConversationListItem
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{byID: make(map[string]*messaging.Conversation)}
}

func (r *memConversationRepo) add(id, low, high string) *messaging.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	c := &messaging.Conversation{ID: id, UserLow: low, UserHigh: high, CreatedAt: now, UpdatedAt: now}
	r.byID[id] = c
	return c
}

func (r *memConversationRepo) FindByPair(_ context.Context, userLow, userHigh string) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.UserLow == userLow && c.UserHigh == userHigh {
			cp := *c
			return &cp, nil
		}
	}
	return nil, messaging.ErrNotFound
}

func (r *memConversationRepo) FindByID(_ context.Context, id string) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, messaging.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memConversationRepo) Create(_ context.Context, userLow, userHigh string) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.UserLow == userLow && c.UserHigh == userHigh {
			return nil, messaging.ErrConversationExists
		}
	}
	now := time.Now()
	c := &messaging.Conversation{ID: uuid.NewString(), UserLow: userLow, UserHigh: userHigh, CreatedAt: now, UpdatedAt: now}
	r.byID[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *memConversationRepo) ListForUser(_ context.Context, _ string) ([]repository.ConversationListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items, nil
}

func (r *memConversationRepo) Touch(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[conversationID]
	if !ok {
		return messaging.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.touched = append(r.touched, conversationID)
	return nil
}

func (r *memConversationRepo) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[conversationID]
	if !ok {
		return false, nil
	}
	return c.OtherParticipant(userID) != "", nil
}

// memMessageRepo is an in-memory append-only message log.
type memMessageRepo struct {
	mu   sync.Mutex
	msgs []messaging.Message
	seq  int64
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Append(_ context.Context, m messaging.Message) (*messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	m.Seq = r.seq
	m.IsRead = false
	r.msgs = append(r.msgs, m)
	cp := m
	return &cp, nil
}

func (r *memMessageRepo) ListOrdered(_ context.Context, conversationID string) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.Message
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) MarkReadExceptSender(_ context.Context, conversationID, excludeSenderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.msgs {
		m := &r.msgs[i]
		if m.ConversationID == conversationID && !m.IsRead && m.SenderID != excludeSenderID {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *memMessageRepo) unreadCount(conversationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.ConversationID == conversationID && !m.IsRead {
			n++
		}
	}
	return n
}

// memDirectory serves profiles from a fixed map.
type memDirectory struct {
	mu    sync.Mutex
	users map[string]directory.User
}

func newMemDirectory(users ...directory.User) *memDirectory {
	d := &memDirectory{users: make(map[string]directory.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *memDirectory) GetUser(_ context.Context, id string) (*directory.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (d *memDirectory) GetUsers(_ context.Context, ids []string) (map[string]directory.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]directory.User, len(ids))
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// chanDispatcher records dispatches on a channel so tests can wait for the
// background notification goroutine.
type chanDispatcher struct {
	calls chan notification.NewMessageNotification
	err   error
}

func newChanDispatcher() *chanDispatcher {
	return &chanDispatcher{calls: make(chan notification.NewMessageNotification, 4)}
}

func (d *chanDispatcher) DispatchNewMessage(_ context.Context, n notification.NewMessageNotification) error {
	d.calls <- n
	return d.err
}

func testUser(id, first, last string, notify bool) directory.User {
	return directory.User{
		ID:                 id,
		Email:              id + "@example.com",
		FirstName:          first,
		LastName:           last,
		EmailNotifications: notify,
		NotifyOnMessages:   notify,
	}
}
