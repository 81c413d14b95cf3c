package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skeemans/cafebot/internal/logger"
	"github.com/skeemans/cafebot/internal/order"
	"github.com/skeemans/cafebot/internal/telegram/format"
	"github.com/skeemans/cafebot/internal/telegram/keyboard"
	"github.com/skeemans/cafebot/internal/telegram/outbound"
	"github.com/skeemans/cafebot/internal/telegram/tgctx"

	tele "gopkg.in/telebot.v4"
)

func cancelRow() []keyboard.InlineBtn {
	return []keyboard.InlineBtn{{Text: btnCancel, Unique: cbCancel}}
}

// prompt sends one escaped line with the cancel button attached.
func prompt(c tele.Context, text string) error {
	var msg outbound.Message
	msg.Add(text, format.Escape)
	msg.WithMarkup(keyboard.InlineRows(cancelRow()))
	return msg.Send(c)
}

// BeginPurchase opens a new conversation and asks for the product name.
// Triggered by the «Купити» reply button; any previous session is discarded.
func (h *Handlers) BeginPurchase(c tele.Context) error {
	h.sessions.Begin(c.Sender().ID, order.StateProductAmount)
	return prompt(c, textAskProduct)
}

// CollectProductName stores the product name and asks for the quantity.
func (h *Handlers) CollectProductName(c tele.Context) error {
	text := c.Text()
	h.sessions.Update(c.Sender().ID, func(s *order.Session) {
		s.ProductName = text
		s.State = order.StatePaymentMethod
	})
	return prompt(c, textAskAmount)
}

// CollectProductAmount stores the quantity and shows the payment keyboard.
func (h *Handlers) CollectProductAmount(c tele.Context) error {
	text := c.Text()
	h.sessions.Update(c.Sender().ID, func(s *order.Session) {
		s.ProductAmount = text
		s.State = order.StateAmountOfMoney
	})

	var msg outbound.Message
	msg.Add(textAskPayment, format.Escape)
	msg.WithMarkup(keyboard.InlineRows(
		[]keyboard.InlineBtn{
			{Text: btnCard, Unique: cbCard},
			{Text: btnCash, Unique: cbCash},
		},
		cancelRow(),
	))
	return msg.Send(c)
}

// PayByCard records the card choice, shows the payment requisites, and asks
// for the amount paid. Ignored unless the session is waiting for a payment
// method, so stale buttons cannot derail a conversation.
func (h *Handlers) PayByCard(c tele.Context) error {
	userID := c.Sender().ID
	if h.sessions.State(userID) != order.StateAmountOfMoney {
		return nil
	}
	h.sessions.Update(userID, func(s *order.Session) {
		s.PaymentMethod = order.PaymentCard
		s.State = order.StateClientName
	})

	var requisites outbound.Message
	requisites.Add(textCardNumber+h.cfg.Payment.CardNumber, format.Escape)
	if err := requisites.Send(c); err != nil {
		return err
	}

	if h.cfg.Payment.PaymentLink != "" {
		var link outbound.Message
		link.Add(h.cfg.Payment.PaymentLink, format.Escape)
		if err := link.Send(c); err != nil {
			return err
		}
	}

	return prompt(c, textAskMoney)
}

// PayByCash records the cash choice and asks for the amount paid.
func (h *Handlers) PayByCash(c tele.Context) error {
	userID := c.Sender().ID
	if h.sessions.State(userID) != order.StateAmountOfMoney {
		return nil
	}
	h.sessions.Update(userID, func(s *order.Session) {
		s.PaymentMethod = order.PaymentCash
		s.State = order.StateClientName
	})

	var msg outbound.Message
	msg.Add(textCashRegister, format.Escape)
	if err := msg.Send(c); err != nil {
		return err
	}

	return prompt(c, textAskMoney)
}

// CollectMoneyAmount stores the paid amount and asks for the client's name.
func (h *Handlers) CollectMoneyAmount(c tele.Context) error {
	text := c.Text()
	h.sessions.Update(c.Sender().ID, func(s *order.Session) {
		s.MoneyAmount = text
		s.State = order.StateSaveRecord
	})
	return prompt(c, textAskClientName)
}

// CompleteOrder stores the client's name, writes the ledger row, mirrors the
// order, notifies the admin, and confirms to the customer. The session is
// kept on ledger failure so resending the name retries the write.
func (h *Handlers) CompleteOrder(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()
	h.sessions.Update(userID, func(s *order.Session) {
		s.ClientFullName = text
	})

	sess, ok := h.sessions.Snapshot(userID)
	if !ok || !sess.Complete() {
		h.sessions.Clear(userID)
		return fmt.Errorf("incomplete purchase session for user %d", userID)
	}

	o := order.Order{
		ID:             uuid.NewString(),
		ClientFullName: sess.ClientFullName,
		ProductName:    sess.ProductName,
		ProductAmount:  sess.ProductAmount,
		PaymentMethod:  sess.PaymentMethod,
		MoneyAmount:    sess.MoneyAmount,
		PlacedAt:       time.Now(),
	}

	ctx := tgctx.BuildContext(c)
	if err := h.ledger.Append(ctx, o); err != nil {
		return fmt.Errorf("ledger append: %w", err)
	}

	if h.mirror != nil {
		if err := h.mirror.Insert(ctx, o); err != nil {
			logger.Error(ctx, "orders", "order.mirror_failed",
				slog.String("order_id", o.ID),
				slog.String("err", err.Error()),
			)
		}
	}

	h.notifyAdmin(c, o)

	var msg outbound.Message
	msg.Add(textOrderSaved, format.Escape)
	if err := msg.Send(c); err != nil {
		return err
	}

	logger.Info(ctx, "orders", "order.completed",
		slog.String("status", "ok"),
		slog.String("order_id", o.ID),
		slog.String("product", logger.Sanitize(o.ProductName)),
		slog.String("payment_method", string(o.PaymentMethod)),
	)
	h.sessions.Clear(userID)
	return nil
}

// Cancel aborts the conversation from any step. The message carrying the
// pressed button is edited in place rather than answered with a new one.
func (h *Handlers) Cancel(c tele.Context) error {
	userID := c.Sender().ID
	if !h.sessions.InProgress(userID) {
		return nil
	}
	h.sessions.Clear(userID)

	var msg outbound.Message
	msg.Add(textGoodbye, format.Escape)
	return msg.Edit(c)
}

// notifyAdmin enqueues a fire-and-forget summary for the admin chat.
// Failures never reach the customer flow.
func (h *Handlers) notifyAdmin(c tele.Context, o order.Order) {
	if h.dispatcher == nil || h.cfg.Telegram.AdminID == 0 {
		return
	}

	var msg outbound.Message
	msg.AddTitle("Нова покупка")
	msg.Add(fmt.Sprintf("%s — %s x%s, %s, %s грн",
		o.ClientFullName, o.ProductName, o.ProductAmount, o.PaymentMethod, o.MoneyAmount,
	), format.Escape)
	text := msg.Text()

	bot := c.Bot()
	admin := &tele.User{ID: h.cfg.Telegram.AdminID}
	ctx := tgctx.BuildContext(c)

	err := h.dispatcher.Enqueue(ctx, "admin.notify", func() error {
		_, sendErr := bot.Send(admin, text, &tele.SendOptions{ParseMode: tele.ModeMarkdownV2})
		return sendErr
	})
	if err != nil {
		logger.Warn(ctx, "orders", "order.notify_skipped",
			slog.String("order_id", o.ID),
			slog.String("err", err.Error()),
		)
	}
}
