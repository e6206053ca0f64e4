package ingest

import (
	"context"
	"fmt"
	"strings"

	"restaurant-panel/internal/models"
	"restaurant-panel/internal/money"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type ProfileGetter interface {
	GetProfile(ctx context.Context, id uint) (*models.User, error)
}

// TelegramAlerter messages the restaurant's linked chat when an order comes in.
type TelegramAlerter struct {
	Bot      MessageSender
	Profiles ProfileGetter
}

func NewTelegramAlerter(token string, profiles ProfileGetter) (*TelegramAlerter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramAlerter{Bot: api, Profiles: profiles}, nil
}

func (a *TelegramAlerter) NewOrder(ctx context.Context, order *models.Order) error {
	profile, err := a.Profiles.GetProfile(ctx, order.RestaurantID)
	if err != nil {
		return err
	}
	if profile.TelegramChatID == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(*profile.TelegramChatID, FormatAlert(order))
	_, err = a.Bot.Send(msg)
	return err
}

func FormatAlert(o *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n", o.ID)
	if o.Name != "" {
		fmt.Fprintf(&b, "Customer: %s\n", o.Name)
	}
	if o.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	}
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%d x %s\n", it.Units(), it.Name)
	}
	fmt.Fprintf(&b, "Total: %s", money.FormatTRY(o.Amount))
	return b.String()
}
