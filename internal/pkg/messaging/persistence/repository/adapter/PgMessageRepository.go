package adapter

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.MessageRepository = (*PgMessageRepository)(nil)

// Append is strictly append-only: created_at and seq come from the database
// so that history order is decided in one place regardless of which node
// handled the request.
func (r *PgMessageRepository) Append(ctx context.Context, m messaging.Message) (*messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	stored := m
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING is_read, created_at, seq
	`, stored.ID, stored.ConversationID, stored.SenderID, stored.Content).
		Scan(&stored.IsRead, &stored.CreatedAt, &stored.Seq)
	if isForeignKeyViolation(err) {
		return nil, messaging.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *PgMessageRepository) ListOrdered(ctx context.Context, conversationID string) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, content, is_read, created_at, seq
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, seq ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var msg messaging.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content,
			&msg.IsRead, &msg.CreatedAt, &msg.Seq); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

// MarkReadExceptSender is a set-based conditional update; concurrent calls
// converge on the same final state because the transition only ever goes
// unread -> read.
func (r *PgMessageRepository) MarkReadExceptSender(ctx context.Context, conversationID, excludeSenderID string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`, conversationID, excludeSenderID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
