package pg

import (
	"context"
	"errors"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionStore keeps one cache snapshot row per namespace.
type SessionStore struct {
	db        *DB
	namespace string
}

var _ application.SessionStore = (*SessionStore)(nil)

func NewSessionStore(db *DB, namespace string) *SessionStore {
	return &SessionStore{db: db, namespace: namespace}
}

func (s *SessionStore) Load(ctx context.Context) ([]byte, error) {
	const q = `SELECT payload::text FROM cache_snapshots WHERE namespace=$1`
	var payload string
	err := s.db.Pool.QueryRow(ctx, q, s.namespace).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, application.ErrNoSnapshot
	}
	if err != nil {
		logx.L().Error("sql.query_failed",
			zap.String("repo", "cache_snapshots"),
			zap.String("operation", "Load"),
			zap.Error(err),
		)
		return nil, err
	}
	return []byte(payload), nil
}

func (s *SessionStore) Save(ctx context.Context, snapshot []byte) error {
	const up = `
        INSERT INTO cache_snapshots(namespace, payload, saved_at)
        VALUES ($1, $2::jsonb, NOW())
        ON CONFLICT (namespace) DO UPDATE
          SET payload=EXCLUDED.payload, saved_at=EXCLUDED.saved_at`
	_, err := s.db.Pool.Exec(ctx, up, s.namespace, string(snapshot))
	return err
}

func (s *SessionStore) Delete(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM cache_snapshots WHERE namespace=$1`, s.namespace)
	return err
}

func (s *SessionStore) Exists(ctx context.Context) (bool, error) {
	var ok bool
	err := s.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cache_snapshots WHERE namespace=$1)`, s.namespace,
	).Scan(&ok)
	return ok, err
}
