package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type SellersRepository struct {
	DB *sql.DB
}

func (r SellersRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const sellerSelect = `
	SELECT id, user_id, store_name, COALESCE(description,'') AS description,
	       COALESCE(campus,'') AS campus, COALESCE(phone,'') AS phone,
	       created_at, updated_at
	FROM sellers
`

func scanSeller(row interface{ Scan(...any) error }) (models.Seller, error) {
	var s models.Seller
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.StoreName,
		&s.Description,
		&s.Campus,
		&s.Phone,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r SellersRepository) FindByID(id int64) (models.Seller, error) {
	s, err := scanSeller(r.db().QueryRow(sellerSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seller{}, domain.NotFoundError{Resource: "seller", Err: err}
		}
		return models.Seller{}, domain.InternalError{Msg: "query seller by id", Err: err}
	}
	return s, nil
}

func (r SellersRepository) FindByUserID(userID int64) (models.Seller, error) {
	s, err := scanSeller(r.db().QueryRow(sellerSelect+` WHERE user_id = ?`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seller{}, domain.NotFoundError{Resource: "seller", Err: err}
		}
		return models.Seller{}, domain.InternalError{Msg: "query seller by user id", Err: err}
	}
	return s, nil
}

// Create inserts a seller profile. The user_id column is unique, so a second
// registration for the same user comes back as a Conflict.
func (r SellersRepository) Create(s models.Seller) (models.Seller, error) {
	res, err := r.db().Exec(`
		INSERT INTO sellers (user_id, store_name, description, campus, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, s.UserID, s.StoreName, s.Description, s.Campus, s.Phone)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return models.Seller{}, domain.ConflictError{Resource: "seller", Msg: "seller profile already registered", Err: err}
		}
		return models.Seller{}, domain.InternalError{Msg: "insert seller", Err: err}
	}
	s.ID, _ = res.LastInsertId()
	return s, nil
}

func (r SellersRepository) Update(s models.Seller) error {
	res, err := r.db().Exec(`
		UPDATE sellers
		SET store_name = ?, description = ?, campus = ?, phone = ?, updated_at = NOW()
		WHERE id = ?
	`, s.StoreName, s.Description, s.Campus, s.Phone, s.ID)
	if err != nil {
		return domain.InternalError{Msg: "update seller", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "seller"}
	}
	return nil
}
