package audit

import (
	"context"
	"log"
	"strconv"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Lister interface {
	List(ctx context.Context, restaurantID uint, f ListFilter) ([]models.AuditLog, error)
}

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/audit-logs?entity_type=order&entity_id=1&limit=50
func ListAuditLogsHandler(lister Lister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		filter := ListFilter{EntityType: c.Query("entity_type")}
		if v := c.Query("entity_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid entity_id")
			}
			filter.EntityID = uint(id)
		}
		filter.Limit = c.QueryInt("limit", 100)

		logs, err := lister.List(c.UserContext(), session.RestaurantID, filter)
		if err != nil {
			log.Printf("[ERROR] audit log list for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
			})
		}
		return c.JSON(resp)
	}
}
