package services

import (
	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

// SellerService registers and maintains seller profiles.
type SellerService struct {
	Sellers   repositories.SellersRepository
	Users     repositories.UsersRepository
	RequestID string
}

// Register creates a seller profile for the user and promotes their role.
// A second registration for the same user is a Conflict from the sellers
// repository (unique user_id); the raw driver error never reaches callers.
func (s SellerService) Register(userID int64, profile models.Seller) (models.Seller, error) {
	profile.UserID = userID
	profile.StoreName = utils.NormalizeSpace(profile.StoreName)

	created, err := s.Sellers.Create(profile)
	if err != nil {
		return models.Seller{}, err
	}

	// Promotion to seller; admins keep their role.
	user, err := s.Users.FindByID(userID)
	if err == nil && user.Role == models.RoleCustomer {
		if err := s.Users.UpdateRole(userID, models.RoleSeller); err != nil {
			utils.LogEvent(s.RequestID, "sellers", "promote_role", err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "sellers", "register", created.StoreName)
	return created, nil
}

func (s SellerService) Update(sellerID int64, profile models.Seller) (models.Seller, error) {
	existing, err := s.Sellers.FindByID(sellerID)
	if err != nil {
		return models.Seller{}, err
	}

	if name := utils.NormalizeSpace(profile.StoreName); name != "" {
		existing.StoreName = name
	}
	if profile.Description != "" {
		existing.Description = profile.Description
	}
	if profile.Campus != "" {
		existing.Campus = profile.Campus
	}
	if profile.Phone != "" {
		existing.Phone = profile.Phone
	}

	if err := s.Sellers.Update(existing); err != nil {
		return models.Seller{}, err
	}
	return existing, nil
}
