package bank

import (
	"errors"
	"log"

	"restaurant-panel/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const msgMissingRequired = "Please fill in required fields (Bank Name and IBAN)."

// GET /api/bank-details
func GetBankDetailsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		d, err := svc.Get(c.UserContext(), session.RestaurantID)
		if err != nil {
			log.Printf("[ERROR] bank details for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Bank details could not be loaded")
		}
		if d == nil {
			// the panel renders an empty form
			return c.JSON(fiber.Map{})
		}
		return c.JSON(d)
	}
}

// PUT /api/bank-details
func SaveBankDetailsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body Input
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		d, err := svc.Save(c.UserContext(), session, body)
		if errors.Is(err, ErrMissingRequired) {
			return fiber.NewError(fiber.StatusBadRequest, msgMissingRequired)
		}
		if err != nil {
			log.Printf("[ERROR] saving bank details for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save bank details.")
		}
		return c.JSON(d)
	}
}
