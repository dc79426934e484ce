package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
)

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.ConversationRepository = (*PgConversationRepository)(nil)

func (r *PgConversationRepository) FindByPair(ctx context.Context, userLow, userHigh string) (*messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	var c messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_low, user_high, created_at, updated_at
		FROM conversations
		WHERE user_low = $1 AND user_high = $2
	`, userLow, userHigh).Scan(&c.ID, &c.UserLow, &c.UserHigh, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, messaging.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgConversationRepository) FindByID(ctx context.Context, id string) (*messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	var c messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_low, user_high, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`, id).Scan(&c.ID, &c.UserLow, &c.UserHigh, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, messaging.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the conversation and both participants in one transaction.
// The unique index on (user_low, user_high) resolves concurrent creates for
// the same pair: the loser sees messaging.ErrConversationExists.
func (r *PgConversationRepository) Create(ctx context.Context, userLow, userHigh string) (*messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	c := messaging.Conversation{
		ID:       uuid.NewString(),
		UserLow:  userLow,
		UserHigh: userHigh,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (id, user_low, user_high)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, c.ID, c.UserLow, c.UserHigh).Scan(&c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, messaging.ErrConversationExists
	}
	if err != nil {
		return nil, err
	}

	for _, userID := range c.ParticipantIDs() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO participants (conversation_id, user_id)
			VALUES ($1, $2)
		`, c.ID, userID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, messaging.ErrConversationExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *PgConversationRepository) ListForUser(ctx context.Context, userID string) ([]repository.ConversationListItem, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_low, c.user_high, c.created_at, c.updated_at,
		       m.id, m.sender_id, m.content, m.is_read, m.created_at, m.seq
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, sender_id, content, is_read, created_at, seq
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, seq DESC
			LIMIT 1
		) m ON TRUE
		WHERE c.user_low = $1 OR c.user_high = $1
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []repository.ConversationListItem
	for rows.Next() {
		var (
			item     repository.ConversationListItem
			mID      *string
			mSender  *string
			mContent *string
			mRead    *bool
			mCreated *time.Time
			mSeq     *int64
		)
		if err := rows.Scan(
			&item.Conversation.ID, &item.Conversation.UserLow, &item.Conversation.UserHigh,
			&item.Conversation.CreatedAt, &item.Conversation.UpdatedAt,
			&mID, &mSender, &mContent, &mRead, &mCreated, &mSeq,
		); err != nil {
			return nil, err
		}
		item.OtherUserID = item.Conversation.OtherParticipant(userID)
		if mID != nil {
			item.LastMessage = &messaging.Message{
				ID:             *mID,
				ConversationID: item.Conversation.ID,
				SenderID:       *mSender,
				Content:        *mContent,
				IsRead:         *mRead,
				CreatedAt:      *mCreated,
				Seq:            *mSeq,
			}
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

func (r *PgConversationRepository) Touch(ctx context.Context, conversationID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgConversationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE conversations SET updated_at = now() WHERE id = $1
	`, conversationID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return messaging.ErrNotFound
	}
	return nil
}

func (r *PgConversationRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgConversationRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM participants WHERE conversation_id = $1 AND user_id = $2
		)
	`, conversationID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
