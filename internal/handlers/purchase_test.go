package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skeemans/cafebot/internal/config"
	"github.com/skeemans/cafebot/internal/order"
	tg "github.com/skeemans/cafebot/internal/telegram"
	"github.com/skeemans/cafebot/internal/telegram/format"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the slice of tele.Context the handlers touch.
// Everything else panics via the embedded nil interface, which is exactly
// what we want from a test double.
type fakeContext struct {
	tele.Context

	sender *tele.User
	chat   *tele.Chat
	text   string

	store   map[string]interface{}
	sent    []string
	markups []*tele.ReplyMarkup
	edited  []string
	sendErr error
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		chat:   &tele.Chat{ID: userID},
		text:   text,
	}
}

func (f *fakeContext) Sender() *tele.User  { return f.sender }
func (f *fakeContext) Chat() *tele.Chat    { return f.chat }
func (f *fakeContext) Text() string        { return f.text }
func (f *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }

func (f *fakeContext) Get(key string) interface{} { return f.store[key] }

func (f *fakeContext) Set(key string, value interface{}) {
	if f.store == nil {
		f.store = make(map[string]interface{})
	}
	f.store[key] = value
}

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	switch v := what.(type) {
	case string:
		f.sent = append(f.sent, v)
	case *tele.Photo:
		f.sent = append(f.sent, "photo:"+v.Caption)
	}
	for _, opt := range opts {
		if so, ok := opt.(*tele.SendOptions); ok {
			f.markups = append(f.markups, so.ReplyMarkup)
		}
	}
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		f.edited = append(f.edited, s)
	}
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error { return nil }

type fakeLedger struct {
	orders []order.Order
	err    error
}

func (f *fakeLedger) Append(_ context.Context, o order.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, o)
	return nil
}

type fakeMirror struct {
	inserted []order.Order
	recent   []order.Order
}

func (f *fakeMirror) Insert(_ context.Context, o order.Order) error {
	f.inserted = append(f.inserted, o)
	return nil
}

func (f *fakeMirror) ListRecent(_ context.Context, limit int) ([]order.Order, error) {
	return f.recent, nil
}

func newTestHandlers(ledger *fakeLedger, mirror *fakeMirror) (*Handlers, *order.Store) {
	sessions := order.NewStore()
	cfg := &config.Config{}
	cfg.Payment.CardNumber = "4444 5555 6666 7777"
	cfg.Payment.PaymentLink = "https://send.example/cafebot"

	h := New(Deps{
		Config:   cfg,
		Sessions: sessions,
		Ledger:   ledger,
		Mirror:   mirror,
	})
	h.Register(tg.NewRegistry())
	return h, sessions
}

func TestBeginPurchaseOpensSession(t *testing.T) {
	h, sessions := newTestHandlers(&fakeLedger{}, nil)
	c := newFakeContext(1, triggerBuy)

	if err := h.BeginPurchase(c); err != nil {
		t.Fatalf("BeginPurchase: %v", err)
	}
	if got := sessions.State(1); got != order.StateProductAmount {
		t.Fatalf("state = %s, want product_amount", got)
	}
	if len(c.sent) != 1 || c.sent[0] != format.Escape(textAskProduct) {
		t.Fatalf("sent = %q", c.sent)
	}
	if len(c.markups) != 1 || c.markups[0] == nil || len(c.markups[0].InlineKeyboard) != 1 {
		t.Fatal("prompt should carry the cancel button")
	}
}

func TestCollectProductNameAdvances(t *testing.T) {
	_, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StateProductAmount)

	c := newFakeContext(1, "крафтовий лимонад 0.5л")
	if err := sessions.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	snap, _ := sessions.Snapshot(1)
	if snap.ProductName != "крафтовий лимонад 0.5л" {
		t.Fatalf("product name = %q", snap.ProductName)
	}
	if snap.State != order.StatePaymentMethod {
		t.Fatalf("state = %s, want payment_method", snap.State)
	}
	if len(c.sent) != 1 || c.sent[0] != format.Escape(textAskAmount) {
		t.Fatalf("sent = %q", c.sent)
	}
}

func TestCollectProductAmountShowsPaymentKeyboard(t *testing.T) {
	_, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StatePaymentMethod)
	sessions.Update(1, func(s *order.Session) { s.ProductName = "еклер" })

	c := newFakeContext(1, "2")
	if err := sessions.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	snap, _ := sessions.Snapshot(1)
	if snap.ProductAmount != "2" {
		t.Fatalf("product amount = %q", snap.ProductAmount)
	}
	if snap.State != order.StateAmountOfMoney {
		t.Fatalf("state = %s, want amount_of_money", snap.State)
	}
	if len(c.markups) != 1 || c.markups[0] == nil {
		t.Fatal("payment prompt must carry a keyboard")
	}
	kb := c.markups[0].InlineKeyboard
	if len(kb) != 2 || len(kb[0]) != 2 || len(kb[1]) != 1 {
		t.Fatalf("keyboard layout = %v", kb)
	}
	if kb[0][0].Unique != cbCard || kb[0][1].Unique != cbCash {
		t.Fatalf("payment buttons = %q, %q", kb[0][0].Unique, kb[0][1].Unique)
	}
}

func TestPayByCardSendsRequisitesThenPrompt(t *testing.T) {
	h, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StateAmountOfMoney)

	c := newFakeContext(1, "")
	if err := h.PayByCard(c); err != nil {
		t.Fatalf("PayByCard: %v", err)
	}

	snap, _ := sessions.Snapshot(1)
	if snap.PaymentMethod != order.PaymentCard {
		t.Fatalf("payment method = %q", snap.PaymentMethod)
	}
	if snap.State != order.StateClientName {
		t.Fatalf("state = %s, want client_name", snap.State)
	}
	if len(c.sent) != 3 {
		t.Fatalf("sent %d messages, want 3 (requisites, link, prompt): %q", len(c.sent), c.sent)
	}
	if !strings.Contains(c.sent[0], "4444") {
		t.Fatalf("first message should show the card number: %q", c.sent[0])
	}
	if c.sent[2] != format.Escape(textAskMoney) {
		t.Fatalf("last message = %q", c.sent[2])
	}
}

func TestPayByCashSendsInstructionThenPrompt(t *testing.T) {
	h, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StateAmountOfMoney)

	c := newFakeContext(1, "")
	if err := h.PayByCash(c); err != nil {
		t.Fatalf("PayByCash: %v", err)
	}

	snap, _ := sessions.Snapshot(1)
	if snap.PaymentMethod != order.PaymentCash {
		t.Fatalf("payment method = %q", snap.PaymentMethod)
	}
	if len(c.sent) != 2 {
		t.Fatalf("sent %d messages, want 2 (instruction, prompt): %q", len(c.sent), c.sent)
	}
	if c.sent[0] != format.Escape(textCashRegister) {
		t.Fatalf("instruction = %q", c.sent[0])
	}
}

func TestPaymentCallbacksIgnoredOutsidePaymentStep(t *testing.T) {
	h, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StateProductAmount)

	c := newFakeContext(1, "")
	if err := h.PayByCard(c); err != nil {
		t.Fatalf("PayByCard: %v", err)
	}
	if len(c.sent) != 0 {
		t.Fatalf("stale button must not reply, sent %q", c.sent)
	}
	if got := sessions.State(1); got != order.StateProductAmount {
		t.Fatalf("state changed to %s", got)
	}
}

func TestTextDuringPaymentChoiceIsDropped(t *testing.T) {
	_, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StateAmountOfMoney)

	c := newFakeContext(1, "готівка")
	if err := sessions.Handle(c); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(c.sent) != 0 {
		t.Fatalf("typed text in payment step must be ignored, sent %q", c.sent)
	}
}

func TestCompleteOrderWritesLedgerAndMirror(t *testing.T) {
	ledger := &fakeLedger{}
	mirror := &fakeMirror{}
	h, sessions := newTestHandlers(ledger, mirror)

	sessions.Begin(1, order.StateSaveRecord)
	sessions.Update(1, func(s *order.Session) {
		s.ProductName = "еклер"
		s.ProductAmount = "2"
		s.PaymentMethod = order.PaymentCash
		s.MoneyAmount = "120"
	})

	c := newFakeContext(1, "Яна Коваль")
	if err := h.CompleteOrder(c); err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	if len(ledger.orders) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(ledger.orders))
	}
	o := ledger.orders[0]
	if o.ClientFullName != "Яна Коваль" || o.ProductName != "еклер" || o.MoneyAmount != "120" {
		t.Fatalf("ledger order = %+v", o)
	}
	if o.ID == "" || o.PlacedAt.IsZero() {
		t.Fatal("order must carry an id and a timestamp")
	}
	if len(mirror.inserted) != 1 || mirror.inserted[0].ID != o.ID {
		t.Fatalf("mirror inserted = %+v", mirror.inserted)
	}
	if len(c.sent) != 1 || c.sent[0] != format.Escape(textOrderSaved) {
		t.Fatalf("confirmation = %q", c.sent)
	}
	if sessions.InProgress(1) {
		t.Fatal("session must be cleared after completion")
	}
}

func TestCompleteOrderKeepsSessionOnLedgerFailure(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("insert row: quota exceeded")}
	h, sessions := newTestHandlers(ledger, nil)

	sessions.Begin(1, order.StateSaveRecord)
	sessions.Update(1, func(s *order.Session) {
		s.ProductName = "еклер"
		s.ProductAmount = "2"
		s.PaymentMethod = order.PaymentCard
		s.MoneyAmount = "120"
	})

	c := newFakeContext(1, "Яна Коваль")
	if err := h.CompleteOrder(c); err == nil {
		t.Fatal("ledger failure must propagate")
	}
	if len(c.sent) != 0 {
		t.Fatalf("no confirmation on failure, sent %q", c.sent)
	}
	if !sessions.InProgress(1) {
		t.Fatal("session must survive so resending the name retries the write")
	}
}

func TestCancelEditsMessageAndClearsSession(t *testing.T) {
	h, sessions := newTestHandlers(&fakeLedger{}, nil)
	sessions.Begin(1, order.StatePaymentMethod)

	c := newFakeContext(1, "")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if sessions.InProgress(1) {
		t.Fatal("session must be cleared")
	}
	if len(c.sent) != 0 {
		t.Fatalf("cancel must edit, not send: %q", c.sent)
	}
	if len(c.edited) != 1 || c.edited[0] != format.Escape(textGoodbye) {
		t.Fatalf("edited = %q", c.edited)
	}
}

func TestCancelWithoutSessionDoesNothing(t *testing.T) {
	h, _ := newTestHandlers(&fakeLedger{}, nil)

	c := newFakeContext(1, "")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(c.edited) != 0 || len(c.sent) != 0 {
		t.Fatalf("no session means no reply, edited=%q sent=%q", c.edited, c.sent)
	}
}
