package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
)

// PgDirectory reads the platform users table. The messaging subsystem treats
// the directory as an external collaborator; this adapter never writes.
type PgDirectory struct {
	pool *pgxpool.Pool
}

func NewPgDirectory(pool *pgxpool.Pool) *PgDirectory {
	return &PgDirectory{pool: pool}
}

// Ensure interface compliance at compile time
var _ directory.Directory = (*PgDirectory)(nil)

func (d *PgDirectory) GetUser(ctx context.Context, id string) (*directory.User, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("PgDirectory: nil pool")
	}
	var u directory.User
	err := d.pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, profile_picture, email_notifications, notify_on_messages
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfilePicture,
		&u.EmailNotifications, &u.NotifyOnMessages)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, directory.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *PgDirectory) GetUsers(ctx context.Context, ids []string) (map[string]directory.User, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("PgDirectory: nil pool")
	}
	users := make(map[string]directory.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	rows, err := d.pool.Query(ctx, `
		SELECT id, email, first_name, last_name, profile_picture, email_notifications, notify_on_messages
		FROM users
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u directory.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfilePicture,
			&u.EmailNotifications, &u.NotifyOnMessages); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}
