package handlers

import (
	"fmt"

	"github.com/skeemans/cafebot/internal/telegram/format"
	"github.com/skeemans/cafebot/internal/telegram/outbound"
	"github.com/skeemans/cafebot/internal/telegram/tgctx"

	tele "gopkg.in/telebot.v4"
)

const recentOrdersLimit = 10

// RecentOrders replies with the newest mirrored orders. Admin only.
func (h *Handlers) RecentOrders(c tele.Context) error {
	var msg outbound.Message

	if h.mirror == nil {
		msg.Add("База замовлень не підключена.", format.Escape)
		return msg.Send(c)
	}

	ctx := tgctx.BuildContext(c)
	orders, err := h.mirror.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		return fmt.Errorf("list recent orders: %w", err)
	}
	if len(orders) == 0 {
		msg.Add("Замовлень поки немає.", format.Escape)
		return msg.Send(c)
	}

	msg.AddTitle(fmt.Sprintf("Останні %d замовлень", len(orders)))
	for _, o := range orders {
		msg.AddLine(fmt.Sprintf("%s | %s x%s | %s | %s грн",
			o.PlacedAt.Format("15:04 02-01"),
			o.ProductName, o.ProductAmount,
			o.PaymentMethod, o.MoneyAmount,
		), format.Escape)
	}
	return msg.Send(c)
}
