package repositories

import (
	"testing"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateWithItemsInsufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_quantity FROM products").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(1))
	mock.ExpectRollback()

	repo := OrdersRepository{DB: db}
	_, err = repo.CreateWithItems(models.Order{
		UserID: 5,
		Status: models.OrderPending,
		Items: []models.OrderItem{
			{ProductID: 3, SellerID: 2, ProductName: "Lamp", UnitPrice: 19.99, Quantity: 2},
		},
	})

	if !domain.IsConflict(err) {
		t.Fatalf("oversell must be a Conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWithItemsDecrementsStockAndCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_quantity FROM products").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(10))
	mock.ExpectExec("UPDATE products SET stock_quantity").WithArgs(int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(44, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := OrdersRepository{DB: db}
	placed, err := repo.CreateWithItems(models.Order{
		UserID: 5,
		Status: models.OrderPending,
		Total:  39.98,
		Items: []models.OrderItem{
			{ProductID: 3, SellerID: 2, ProductName: "Lamp", UnitPrice: 19.99, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placed.ID != 44 {
		t.Fatalf("order id not set: %d", placed.ID)
	}
	if placed.Items[0].OrderID != 44 {
		t.Fatalf("item not linked to order: %+v", placed.Items[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWithItemsUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_quantity FROM products").WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
	mock.ExpectRollback()

	repo := OrdersRepository{DB: db}
	_, err = repo.CreateWithItems(models.Order{
		UserID: 5,
		Status: models.OrderPending,
		Items:  []models.OrderItem{{ProductID: 999, Quantity: 1}},
	})

	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
