package products

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/blob"
	"restaurant-panel/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 << 20

func toResponse(p *models.Product) ProductResponse {
	return ProductResponse{Product: p, Price: p.Price()}
}

func parseProductID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
	}
	return uint(id), nil
}

func toFiberError(err error, fallback string) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	case errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, "Product was changed in the meantime, reload and try again.")
	}
	log.Printf("[ERROR] %s: %v", fallback, err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

// GET /api/products?q=soup
func ListProductsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		list, err := svc.List(c.UserContext(), session.RestaurantID, c.Query("q"))
		if err != nil {
			return toFiberError(err, "Products could not be listed")
		}

		res := make([]ProductResponse, 0, len(list))
		for i := range list {
			res = append(res, toResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseProductID(c)
		if err != nil {
			return err
		}

		p, err := svc.Get(c.UserContext(), session.RestaurantID, id)
		if err != nil {
			return toFiberError(err, "Product could not be loaded")
		}
		return c.JSON(toResponse(p))
	}
}

// POST /api/products
func CreateProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		var body ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		p, err := svc.Create(c.UserContext(), session, body)
		if err != nil {
			return toFiberError(err, "Failed to save product. Please try again.")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseProductID(c)
		if err != nil {
			return err
		}

		var body ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		p, err := svc.Update(c.UserContext(), session, id, body)
		if err != nil {
			return toFiberError(err, "Failed to save product. Please try again.")
		}
		return c.JSON(toResponse(p))
	}
}

// DELETE /api/products/:id?confirm=true
func DeleteProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseProductID(c)
		if err != nil {
			return err
		}
		if !c.QueryBool("confirm", false) {
			return fiber.NewError(fiber.StatusBadRequest, "Deleting a product is permanent, repeat the request with confirm=true")
		}

		if err := svc.Delete(c.UserContext(), session, id); err != nil {
			return toFiberError(err, "Failed to delete product.")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/products/:id/qrcode
func QRCodeHandler(svc *Service, gen QRGenerator, baseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}
		id, err := parseProductID(c)
		if err != nil {
			return err
		}

		p, err := svc.Get(c.UserContext(), session.RestaurantID, id)
		if err != nil {
			return toFiberError(err, "Product could not be loaded")
		}
		png, err := gen.Generate(ProductLink(baseURL, p.ID))
		if err != nil {
			return toFiberError(err, "QR code could not be created")
		}

		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(png)
	}
}

// POST /api/uploads/product-image (multipart: image, name)
func UploadImageHandler(store blob.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := auth.SessionFrom(c); err != nil {
			return err
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Image file is required")
		}
		if fileHeader.Size > maxImageSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image must be smaller than 5 MB")
		}
		if ct := fileHeader.Header.Get(fiber.HeaderContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
			return fiber.NewError(fiber.StatusBadRequest, "Only image files can be uploaded")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened")
		}
		defer file.Close()

		name := blob.ProductImageName(c.FormValue("name"), time.Now())
		url, err := store.Upload(c.UserContext(), name, file)
		if err != nil {
			log.Printf("[ERROR] image upload %s: %v", name, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Image could not be uploaded")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	}
}

// GET /api/categories
func ListCategoriesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.Categories(c.UserContext())
		if err != nil {
			return toFiberError(err, "Categories could not be listed")
		}
		return c.JSON(list)
	}
}
