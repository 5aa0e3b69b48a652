package store

import (
	"context"
	"database/sql"

	"github.com/bilimpath/bilim/internal/session"
)

// Persisted session keys. They mirror the web client's local storage so a
// session survives restarts the same way.
const (
	keyAccessToken = "access_token"
	keyTokenType   = "token_type"
	keyRole        = "role"
)

// SessionRepo persists the auth session. Save and Clear are called only by
// the login, registration, and logout flows; everything else reads.
type SessionRepo interface {
	// Load returns the stored session. A missing session is not an error:
	// it comes back with an empty token and Valid() == false.
	Load(ctx context.Context) (session.Session, error)

	// Save stores the session, replacing any previous one.
	Save(ctx context.Context, sess session.Session) error

	// Clear removes the stored session.
	Clear(ctx context.Context) error
}

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Load(ctx context.Context) (session.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM auth_session`)
	if err != nil {
		return session.Session{}, err
	}
	defer rows.Close()

	vals := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return session.Session{}, err
		}
		vals[k] = v
	}
	if err := rows.Err(); err != nil {
		return session.Session{}, err
	}

	if vals[keyAccessToken] == "" {
		return session.Session{}, nil
	}
	return session.New(
		vals[keyAccessToken],
		vals[keyTokenType],
		session.ParseRole(vals[keyRole]),
	), nil
}

func (r *sessionRepo) Save(ctx context.Context, sess session.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pairs := map[string]string{
		keyAccessToken: sess.AccessToken,
		keyTokenType:   sess.TokenType,
		keyRole:        string(sess.Role),
	}
	for k, v := range pairs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO auth_session (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_session`)
	return err
}
