package repositories

import (
	"database/sql"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type MessagesRepository struct {
	DB *sql.DB
}

func (r MessagesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r MessagesRepository) Create(m models.Message) (models.Message, error) {
	res, err := r.db().Exec(`
		INSERT INTO messages (from_user, to_user, product_id, body, created_at)
		VALUES (?, ?, NULLIF(?, 0), ?, NOW())
	`, m.FromUser, m.ToUser, m.ProductID, m.Body)
	if err != nil {
		return models.Message{}, domain.InternalError{Msg: "insert message", Err: err}
	}
	m.ID, _ = res.LastInsertId()
	return m, nil
}

// ListForUser returns every message the user sent or received, newest first.
func (r MessagesRepository) ListForUser(userID int64) ([]models.Message, error) {
	rows, err := r.db().Query(`
		SELECT id, from_user, to_user, COALESCE(product_id, 0) AS product_id, body, created_at
		FROM messages
		WHERE from_user = ? OR to_user = ?
		ORDER BY id DESC
	`, userID, userID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list messages", Err: err}
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.FromUser, &m.ToUser, &m.ProductID, &m.Body, &m.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan message", Err: err}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate messages", Err: err}
	}
	return out, nil
}
