package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type CategoriesRepository struct {
	DB *sql.DB
}

func (r CategoriesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CategoriesRepository) List() ([]models.Category, error) {
	rows, err := r.db().Query(`SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, domain.InternalError{Msg: "list categories", Err: err}
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan category", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate categories", Err: err}
	}
	return out, nil
}

func (r CategoriesRepository) FindByID(id int64) (models.Category, error) {
	var c models.Category
	err := r.db().QueryRow(`SELECT id, name, slug, created_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, domain.NotFoundError{Resource: "category", Err: err}
		}
		return models.Category{}, domain.InternalError{Msg: "query category by id", Err: err}
	}
	return c, nil
}

func (r CategoriesRepository) Create(c models.Category) (models.Category, error) {
	res, err := r.db().Exec(`
		INSERT INTO categories (name, slug, created_at) VALUES (?, ?, NOW())
	`, c.Name, c.Slug)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return models.Category{}, domain.ConflictError{Resource: "category", Msg: "category already exists", Err: err}
		}
		return models.Category{}, domain.InternalError{Msg: "insert category", Err: err}
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

func (r CategoriesRepository) Update(c models.Category) error {
	res, err := r.db().Exec(`UPDATE categories SET name = ?, slug = ? WHERE id = ?`, c.Name, c.Slug, c.ID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "category", Msg: "category already exists", Err: err}
		}
		return domain.InternalError{Msg: "update category", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "category"}
	}
	return nil
}

func (r CategoriesRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		var me *mysql.MySQLError
		// 1451: row is referenced by products
		if errors.As(err, &me) && me.Number == 1451 {
			return domain.ConflictError{Resource: "category", Msg: "category still has products", Err: err}
		}
		return domain.InternalError{Msg: "delete category", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "category"}
	}
	return nil
}
