package services

import (
	"testing"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestSellerRegisterPromotesCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("INSERT INTO sellers").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT u.id, u.name, u.email").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "password_hash", "role", "seller_id", "created_at", "updated_at",
		}).AddRow(7, "Ana", "ana@campus.edu", "", "$argon2id$...", models.RoleCustomer, 0, now, now))
	mock.ExpectExec("UPDATE users SET role").WithArgs(models.RoleSeller, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := SellerService{
		Sellers: repositories.SellersRepository{DB: db},
		Users:   repositories.UsersRepository{DB: db},
	}

	created, err := svc.Register(7, models.Seller{StoreName: "  Campus   Books "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("seller id not set: %d", created.ID)
	}
	if created.StoreName != "Campus Books" {
		t.Fatalf("store name not normalized: %q", created.StoreName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSellerRegisterTwiceIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO sellers").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	svc := SellerService{
		Sellers: repositories.SellersRepository{DB: db},
		Users:   repositories.UsersRepository{DB: db},
	}

	_, err = svc.Register(7, models.Seller{StoreName: "Campus Books"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSellerRegisterKeepsAdminRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("INSERT INTO sellers").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery("SELECT u.id, u.name, u.email").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "password_hash", "role", "seller_id", "created_at", "updated_at",
		}).AddRow(1, "Root", "root@campus.edu", "", "$argon2id$...", models.RoleAdmin, 0, now, now))
	// no role update expected for admins

	svc := SellerService{
		Sellers: repositories.SellersRepository{DB: db},
		Users:   repositories.UsersRepository{DB: db},
	}

	if _, err := svc.Register(1, models.Seller{StoreName: "Admin Store"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
