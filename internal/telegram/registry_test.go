package telegram

import (
	"testing"

	"github.com/skeemans/cafebot/internal/logger"

	tele "gopkg.in/telebot.v4"
)

func initTestLogger(t *testing.T) {
	t.Helper()
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}
}

func noopHandler(tele.Context) error { return nil }

func TestTriggerForPrefixMatch(t *testing.T) {
	initTestLogger(t)
	reg := NewRegistry()
	reg.RegisterTrigger("Купити", "new_purchase", noopHandler)
	reg.RegisterTrigger("Меню", "show_menu", noopHandler)

	trigger, ok := reg.TriggerFor("Купити каву будь ласка")
	if !ok {
		t.Fatal("prefixed text must resolve to the trigger")
	}
	if trigger.Name != "new_purchase" {
		t.Fatalf("trigger = %q", trigger.Name)
	}

	if _, ok := reg.TriggerFor("купити"); ok {
		t.Fatal("prefix match is case sensitive like a reply button label")
	}
	if _, ok := reg.TriggerFor("привіт"); ok {
		t.Fatal("unrelated text must not match")
	}
}

func TestTriggerOrderFirstWins(t *testing.T) {
	initTestLogger(t)
	reg := NewRegistry()
	reg.RegisterTrigger("Меню", "menu_short", noopHandler)
	reg.RegisterTrigger("Меню дня", "menu_long", noopHandler)

	trigger, ok := reg.TriggerFor("Меню дня")
	if !ok || trigger.Name != "menu_short" {
		t.Fatalf("trigger = %q, registration order must win", trigger.Name)
	}
}

func TestListCommandsHidesAdminAndHidden(t *testing.T) {
	initTestLogger(t)
	reg := NewRegistry()
	reg.RegisterCommand("/start", Command{Handler: noopHandler, Description: "Головне меню"})
	reg.RegisterCommand("/orders", Command{Handler: noopHandler, Description: "Останні замовлення", AdminOnly: true, Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible commands = %v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 2 {
		t.Fatalf("all commands = %v", all)
	}
}

func TestRegisterCallbackRejectsDuplicates(t *testing.T) {
	initTestLogger(t)
	reg := NewRegistry()
	if err := reg.RegisterCallback("cancel", noopHandler); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := reg.RegisterCallback("cancel", noopHandler); err == nil {
		t.Fatal("duplicate key must be rejected")
	}

	h, ok := reg.GetCallback("cancel")
	if !ok || h == nil {
		t.Fatal("registered callback must resolve")
	}
	if _, ok := reg.GetCallback("unknown"); ok {
		t.Fatal("unknown key must not resolve")
	}
}
