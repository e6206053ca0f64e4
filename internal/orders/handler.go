package orders

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderResponse struct {
	*models.Order
	StatusLabel string               `json:"status_label"`
	NextActions []models.OrderStatus `json:"next_actions"`
}

func newOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{Order: o, StatusLabel: Label(o.Status), NextActions: NextStatuses(o.Status)}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func parseFilter(c *fiber.Ctx) (Filter, error) {
	var f Filter
	if v := c.Query("status"); v != "" && v != "all" {
		s, ok := ParseStatus(v)
		if !ok {
			return f, fiber.NewError(fiber.StatusBadRequest, "Invalid status filter")
		}
		f.Status = s
	}
	r, ok := ParseDateRange(c.Query("date"))
	if !ok {
		return f, fiber.NewError(fiber.StatusBadRequest, "Invalid date filter")
	}
	f.Range = r
	return f, nil
}

func parseOrderID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid order ID")
	}
	return uint(id), nil
}

func toFiberError(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Order not found")
	case errors.Is(err, ErrIllegalTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, "Order was updated by someone else, please refresh")
	}
	log.Printf("[ERROR] %s: %v", fallback, err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

// GET /api/orders?status=placed&date=today
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		res, err := svc.List(c.UserContext(), session.RestaurantID, filter)
		if err != nil {
			return toFiberError(err, "Orders could not be listed")
		}

		out := make([]OrderResponse, 0, len(res.Orders))
		for i := range res.Orders {
			out = append(out, newOrderResponse(&res.Orders[i]))
		}
		return c.JSON(fiber.Map{
			"orders": out,
			"count":  res.Count,
			"total":  res.Total,
		})
	}
}

// GET /api/orders/:id
func GetOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		o, err := svc.Get(c.UserContext(), session.RestaurantID, id)
		if err != nil {
			return toFiberError(err, "Order could not be loaded")
		}
		return c.JSON(newOrderResponse(o))
	}
}

// POST /api/orders/:id/status {"status": "accepted"}
func UpdateStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		to, ok := ParseStatus(body.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown status")
		}

		res, err := svc.UpdateStatus(c.UserContext(), session, id, to)
		if err != nil {
			return toFiberError(err, "Failed to update order status.")
		}
		return c.JSON(fiber.Map{
			"order":     newOrderResponse(res.Order),
			"shortages": res.Shortages,
		})
	}
}

// GET /api/orders/:id/receipt
func ReceiptHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		o, err := svc.Get(c.UserContext(), session.RestaurantID, id)
		if err != nil {
			return toFiberError(err, "Order could not be loaded")
		}
		buf, err := BuildReceipt(o, svc.Location)
		if err != nil {
			return toFiberError(err, "Receipt could not be created")
		}

		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="order_%d.xlsx"`, o.ID))
		return c.Send(buf.Bytes())
	}
}

// GET /api/orders/export?status=&date=
func ExportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		res, err := svc.List(c.UserContext(), session.RestaurantID, filter)
		if err != nil {
			return toFiberError(err, "Orders could not be listed")
		}
		buf, err := BuildOrderList(res.Orders, svc.Location)
		if err != nil {
			return toFiberError(err, "Export could not be created")
		}

		name := fmt.Sprintf("orders_%s.xlsx", svc.Now().In(svc.Location).Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
		return c.Send(buf.Bytes())
	}
}
