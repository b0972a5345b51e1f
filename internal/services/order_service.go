package services

import (
	"fmt"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// OrderService places orders and reads them back with access control applied
// by the handlers.
type OrderService struct {
	Orders    repositories.OrdersRepository
	Products  repositories.ProductsRepository
	RequestID string
}

// Place snapshots product name and price per line, then creates the order
// and decrements stock transactionally. Unknown products are a NotFound,
// oversells a Conflict.
func (s OrderService) Place(userID int64, lines []OrderLine) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "items", Message: "items is required"},
		}}
	}

	order := models.Order{
		UserID: userID,
		Status: models.OrderPending,
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return models.Order{}, domain.ValidationError{Fields: []domain.FieldError{
				{Field: "quantity", Message: "quantity must be at least 1"},
			}}
		}
		product, err := s.Products.FindByID(line.ProductID)
		if err != nil {
			return models.Order{}, err
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   product.ID,
			SellerID:    product.SellerID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
		})
		order.Total += product.Price * float64(line.Quantity)
	}

	placed, err := s.Orders.CreateWithItems(order)
	if err != nil {
		return models.Order{}, err
	}

	utils.LogEvent(s.RequestID, "orders", "place", fmt.Sprintf("order_id=%d lines=%d", placed.ID, len(placed.Items)))
	return placed, nil
}
