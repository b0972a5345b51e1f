package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// UsersRepository is the identity store. Duplicate emails surface as
// domain.ConflictError, never as a raw driver error.
type UsersRepository struct {
	DB *sql.DB
}

func (r UsersRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userSelect = `
	SELECT u.id, u.name, u.email, COALESCE(u.phone,'') AS phone,
	       u.password_hash, u.role, COALESCE(s.id, 0) AS seller_id,
	       u.created_at, u.updated_at
	FROM users u
	LEFT JOIN sellers s ON s.user_id = u.id
`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.SellerID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r UsersRepository) FindByEmail(email string) (models.User, error) {
	u, err := scanUser(r.db().QueryRow(userSelect+` WHERE u.email = ?`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "query user by email", Err: err}
	}
	return u, nil
}

func (r UsersRepository) FindByID(id int64) (models.User, error) {
	u, err := scanUser(r.db().QueryRow(userSelect+` WHERE u.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "query user by id", Err: err}
	}
	return u, nil
}

func (r UsersRepository) Create(u models.User) (models.User, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "insert user", Err: err}
	}
	u.ID, _ = res.LastInsertId()
	return u, nil
}

func (r UsersRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(userSelect + ` ORDER BY u.id`)
	if err != nil {
		return nil, domain.InternalError{Msg: "list users", Err: err}
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan user", Err: err}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate users", Err: err}
	}
	return out, nil
}

func (r UsersRepository) UpdateRole(id int64, role string) error {
	res, err := r.db().Exec(`UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?`, role, id)
	if err != nil {
		return domain.InternalError{Msg: "update user role", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UsersRepository) UpdatePasswordHash(id int64, hash string) error {
	_, err := r.db().Exec(`UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`, hash, id)
	if err != nil {
		return domain.InternalError{Msg: "update password hash", Err: err}
	}
	return nil
}

func (r UsersRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "delete user", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
