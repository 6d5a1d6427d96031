package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
)

const selectColumns = `SELECT id, sender, receiver, subject, body, created_at, is_read, author_user_id
		 FROM messages`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	m := &models.Message{}
	var createdAt dbx.Timestamp
	if err := row.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Subject, &m.Body,
		&createdAt, &m.Read, &m.AuthorUserID); err != nil {
		return nil, err
	}
	m.CreatedAt = createdAt.Time
	return m, nil
}

func (r *SQLRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (sender, receiver, subject, body, created_at, is_read, author_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		msg.Sender, msg.Receiver, msg.Subject, msg.Body, msg.CreatedAt, msg.Read, msg.AuthorUserID).
		Scan(&msg.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := selectColumns + `
		 WHERE id = $1
		 `

	m, err := scanMessage(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *SQLRepository) FindByReceiver(ctx context.Context, receiver string, unreadOnly bool) ([]*models.Message, error) {
	query := selectColumns + `
		 WHERE receiver = $1
		 `
	if unreadOnly {
		query += ` AND is_read = FALSE
		 `
	}
	query += ` ORDER BY id ASC
		 `

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), receiver)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) FindFirstUnreadForReceiver(ctx context.Context, receiver string) (*models.Message, error) {
	query := selectColumns + `
		 WHERE receiver = $1 AND is_read = FALSE
		 ORDER BY id ASC
		 LIMIT 1
		 `

	m, err := scanMessage(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), receiver))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *SQLRepository) MarkRead(ctx context.Context, id int64) (bool, error) {
	query :=
		`UPDATE messages SET is_read = TRUE
		 WHERE id = $1 AND is_read = FALSE
		 `

	return r.execAffectedOne(ctx, query, id)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query :=
		`DELETE FROM messages
		 WHERE id = $1
		 `

	return r.execAffectedOne(ctx, query, id)
}

func (r *SQLRepository) execAffectedOne(ctx context.Context, query string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n == 1, nil
}
