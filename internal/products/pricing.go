package products

import (
	"errors"
	"strings"
	"time"

	"restaurant-panel/internal/models"
	"restaurant-panel/internal/money"
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries the message shown to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

const msgRequired = "Please fill in required fields (Name and Price)."

type PriceInput struct {
	Before *float64 `json:"before"`
	After  *float64 `json:"after"`
}

// ProductInput is the product form as submitted by the panel.
type ProductInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Price       PriceInput `json:"price"`
	Discount    *int       `json:"discount"`
	MealsCount  *int       `json:"meals_count"`
	OrderDay    string     `json:"order_day"`
	ImageURL    string     `json:"image_url"`

	// UpdatedAt is the version the form was loaded from, sent back on edit.
	UpdatedAt *time.Time `json:"updated_at"`
}

// ResolvePrice derives the sale price. With a list price and a discount
// (0 included) the sale price is computed; otherwise it has to be given. A
// missing list price falls back to the sale price.
func ResolvePrice(in PriceInput, discount *int) (models.Price, error) {
	var before float64
	if in.Before != nil {
		before = *in.Before
	}
	if before < 0 {
		return models.Price{}, invalid("Price cannot be negative.")
	}

	var after float64
	if in.After != nil {
		after = *in.After
	}
	computed := before > 0 && discount != nil
	if computed {
		after = money.Round2(before * (1 - float64(*discount)/100))
	}
	if after <= 0 && !(computed && *discount == 100) {
		return models.Price{}, invalid(msgRequired)
	}

	if before == 0 {
		before = after
	}
	return models.Price{Before: before, After: after}, nil
}

// Apply validates the input and writes it onto p. Fields the form owns are
// replaced; id, owner and timestamps are left alone.
func (in ProductInput) Apply(p *models.Product) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid(msgRequired)
	}

	discount := 0
	if in.Discount != nil {
		discount = *in.Discount
	}
	if discount < 0 || discount > 100 {
		return invalid("Discount must be between 0 and 100.")
	}

	meals := 0
	if in.MealsCount != nil {
		meals = *in.MealsCount
	}
	if meals < 0 {
		return invalid("Meals count cannot be negative.")
	}

	day := models.OrderDay(strings.ToLower(strings.TrimSpace(in.OrderDay)))
	switch day {
	case "":
		day = models.OrderDayToday
	case models.OrderDayToday, models.OrderDayTomorrow:
	default:
		return invalid("Order day must be today or tomorrow.")
	}

	price, err := ResolvePrice(in.Price, in.Discount)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	p.Category = strings.TrimSpace(in.Category)
	p.PriceBefore = price.Before
	p.PriceAfter = price.After
	p.Discount = discount
	p.MealsCount = meals
	p.OrderDay = day
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}
	return nil
}
