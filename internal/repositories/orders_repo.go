package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type OrdersRepository struct {
	DB *sql.DB
}

func (r OrdersRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CreateWithItems inserts the order and its lines and decrements stock in a
// single transaction. Stock rows are locked while checked; selling more than
// is available comes back as a Conflict, not a silent negative balance.
func (r OrdersRepository) CreateWithItems(order models.Order) (models.Order, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.Order{}, domain.InternalError{Msg: "begin order tx", Err: err}
	}
	defer tx.Rollback()

	for _, item := range order.Items {
		var stock int64
		err := tx.QueryRow(`SELECT stock_quantity FROM products WHERE id = ? FOR UPDATE`, item.ProductID).Scan(&stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Order{}, domain.NotFoundError{Resource: "product", Err: err}
			}
			return models.Order{}, domain.InternalError{Msg: "lock product stock", Err: err}
		}
		if stock < item.Quantity {
			return models.Order{}, domain.ConflictError{Resource: "product", Msg: "insufficient stock", Err: nil}
		}
		if _, err := tx.Exec(`
			UPDATE products SET stock_quantity = stock_quantity - ?, updated_at = NOW() WHERE id = ?
		`, item.Quantity, item.ProductID); err != nil {
			return models.Order{}, domain.InternalError{Msg: "decrement stock", Err: err}
		}
	}

	res, err := tx.Exec(`
		INSERT INTO orders (user_id, status, total, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
	`, order.UserID, order.Status, order.Total)
	if err != nil {
		return models.Order{}, domain.InternalError{Msg: "insert order", Err: err}
	}
	order.ID, _ = res.LastInsertId()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		res, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, seller_id, product_name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)
		`, item.OrderID, item.ProductID, item.SellerID, item.ProductName, item.UnitPrice, item.Quantity)
		if err != nil {
			return models.Order{}, domain.InternalError{Msg: "insert order item", Err: err}
		}
		item.ID, _ = res.LastInsertId()
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, domain.InternalError{Msg: "commit order tx", Err: err}
	}
	return order, nil
}

const orderSelect = `
	SELECT id, user_id, status, total, created_at, updated_at
	FROM orders
`

func scanOrder(row interface{ Scan(...any) error }) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r OrdersRepository) FindByID(id int64) (models.Order, error) {
	o, err := scanOrder(r.db().QueryRow(orderSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, domain.NotFoundError{Resource: "order", Err: err}
		}
		return models.Order{}, domain.InternalError{Msg: "query order by id", Err: err}
	}

	items, err := r.listItems(o.ID)
	if err != nil {
		return models.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r OrdersRepository) ListByUser(userID int64) ([]models.Order, error) {
	rows, err := r.db().Query(orderSelect+` WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list orders", Err: err}
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r OrdersRepository) ListAll() ([]models.Order, error) {
	rows, err := r.db().Query(orderSelect + ` ORDER BY id DESC`)
	if err != nil {
		return nil, domain.InternalError{Msg: "list all orders", Err: err}
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r OrdersRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return domain.InternalError{Msg: "update order status", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "order"}
	}
	return nil
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan order", Err: err}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate orders", Err: err}
	}
	return out, nil
}

func (r OrdersRepository) listItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db().Query(`
		SELECT id, order_id, product_id, seller_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list order items", Err: err}
	}
	defer rows.Close()

	out := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.SellerID, &it.ProductName, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, domain.InternalError{Msg: "scan order item", Err: err}
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate order items", Err: err}
	}
	return out, nil
}
