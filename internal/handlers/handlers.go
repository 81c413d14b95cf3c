// Package handlers implements the bot surface: the start keyboard, the menu
// photo, the purchase conversation, and the admin order listing.
package handlers

import (
	"context"

	"github.com/skeemans/cafebot/internal/config"
	"github.com/skeemans/cafebot/internal/order"
	tg "github.com/skeemans/cafebot/internal/telegram"
	"github.com/skeemans/cafebot/internal/telegram/sender"
)

// Ledger appends completed orders to the spreadsheet.
type Ledger interface {
	Append(ctx context.Context, o order.Order) error
}

// OrderMirror persists orders to the database and serves the admin listing.
type OrderMirror interface {
	Insert(ctx context.Context, o order.Order) error
	ListRecent(ctx context.Context, limit int) ([]order.Order, error)
}

// Handlers bundles the bot handlers with their collaborators.
type Handlers struct {
	cfg        *config.Config
	sessions   *order.Store
	ledger     Ledger
	mirror     OrderMirror
	dispatcher *sender.Dispatcher
}

// Deps lists what the handlers need. Ledger is required; the mirror and the
// dispatcher are optional and simply skipped when absent.
type Deps struct {
	Config     *config.Config
	Sessions   *order.Store
	Ledger     Ledger
	Mirror     OrderMirror
	Dispatcher *sender.Dispatcher
}

// New wires the handler set.
func New(deps Deps) *Handlers {
	return &Handlers{
		cfg:        deps.Config,
		sessions:   deps.Sessions,
		ledger:     deps.Ledger,
		mirror:     deps.Mirror,
		dispatcher: deps.Dispatcher,
	}
}

// Register binds every handler to the registry and the session store.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", tg.Command{
		Handler:     h.Start,
		Description: "Головне меню",
	})
	reg.RegisterCommand("/orders", tg.Command{
		Handler:     h.RecentOrders,
		Description: "Останні замовлення",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.RegisterTrigger(triggerMenu, "show_menu", h.ShowMenu)
	reg.RegisterTrigger(triggerBuy, "new_purchase", h.BeginPurchase)

	_ = reg.RegisterCallback(cbCard, h.PayByCard)
	_ = reg.RegisterCallback(cbCash, h.PayByCash)
	_ = reg.RegisterCallback(cbCancel, h.Cancel)

	h.sessions.RegisterHandler(order.StateProductAmount, h.CollectProductName)
	h.sessions.RegisterHandler(order.StatePaymentMethod, h.CollectProductAmount)
	h.sessions.RegisterHandler(order.StateClientName, h.CollectMoneyAmount)
	h.sessions.RegisterHandler(order.StateSaveRecord, h.CompleteOrder)
}
