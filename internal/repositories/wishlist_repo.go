package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type WishlistRepository struct {
	DB *sql.DB
}

func (r WishlistRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r WishlistRepository) ListByUser(userID int64) ([]models.WishlistItem, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, product_id, created_at
		FROM wishlist_items
		WHERE user_id = ?
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list wishlist", Err: err}
	}
	defer rows.Close()

	out := []models.WishlistItem{}
	for rows.Next() {
		var w models.WishlistItem
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProductID, &w.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan wishlist item", Err: err}
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate wishlist", Err: err}
	}
	return out, nil
}

// Add is idempotent: re-adding an already listed product is not an error.
func (r WishlistRepository) Add(userID, productID int64) error {
	_, err := r.db().Exec(`
		INSERT INTO wishlist_items (user_id, product_id, created_at) VALUES (?, ?, NOW())
	`, userID, productID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			switch me.Number {
			case 1062:
				return nil
			case 1452: // product no longer exists
				return domain.NotFoundError{Resource: "product", Err: err}
			}
		}
		return domain.InternalError{Msg: "insert wishlist item", Err: err}
	}
	return nil
}

func (r WishlistRepository) Remove(userID, productID int64) error {
	res, err := r.db().Exec(`
		DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?
	`, userID, productID)
	if err != nil {
		return domain.InternalError{Msg: "delete wishlist item", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "wishlist item"}
	}
	return nil
}
