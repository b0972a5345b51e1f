package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type ProductsRepository struct {
	DB *sql.DB
}

func (r ProductsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const productSelect = `
	SELECT id, seller_id, category_id, name, COALESCE(description,'') AS description,
	       price, stock_quantity, product_condition, COALESCE(image_url,'') AS image_url,
	       created_at, updated_at
	FROM products
`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.SellerID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.StockQuantity,
		&p.Condition,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r ProductsRepository) FindByID(id int64) (models.Product, error) {
	p, err := scanProduct(r.db().QueryRow(productSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, domain.NotFoundError{Resource: "product", Err: err}
		}
		return models.Product{}, domain.InternalError{Msg: "query product by id", Err: err}
	}
	return p, nil
}

func (r ProductsRepository) List(categoryID int64) ([]models.Product, error) {
	query := productSelect
	args := []any{}
	if categoryID > 0 {
		query += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "list products", Err: err}
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r ProductsRepository) ListBySeller(sellerID int64) ([]models.Product, error) {
	rows, err := r.db().Query(productSelect+` WHERE seller_id = ? ORDER BY id DESC`, sellerID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list seller products", Err: err}
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan product", Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate products", Err: err}
	}
	return out, nil
}

func (r ProductsRepository) Create(p models.Product) (models.Product, error) {
	res, err := r.db().Exec(`
		INSERT INTO products (seller_id, category_id, name, description, price, stock_quantity, product_condition, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, p.SellerID, p.CategoryID, p.Name, p.Description, p.Price, p.StockQuantity, p.Condition, p.ImageURL)
	if err != nil {
		return models.Product{}, domain.InternalError{Msg: "insert product", Err: err}
	}
	p.ID, _ = res.LastInsertId()
	return p, nil
}

func (r ProductsRepository) Update(p models.Product) error {
	res, err := r.db().Exec(`
		UPDATE products
		SET category_id = ?, name = ?, description = ?, price = ?, stock_quantity = ?, product_condition = ?, image_url = ?, updated_at = NOW()
		WHERE id = ?
	`, p.CategoryID, p.Name, p.Description, p.Price, p.StockQuantity, p.Condition, p.ImageURL, p.ID)
	if err != nil {
		return domain.InternalError{Msg: "update product", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "product"}
	}
	return nil
}

func (r ProductsRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "delete product", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "product"}
	}
	return nil
}

// CountByCategory backs the category-delete guard.
func (r ProductsRepository) CountByCategory(categoryID int64) (int64, error) {
	var n int64
	err := r.db().QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = ?`, categoryID).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Msg: "count products by category", Err: err}
	}
	return n, nil
}
