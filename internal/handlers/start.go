package handlers

import (
	"github.com/skeemans/cafebot/internal/telegram/format"
	"github.com/skeemans/cafebot/internal/telegram/keyboard"
	"github.com/skeemans/cafebot/internal/telegram/outbound"

	tele "gopkg.in/telebot.v4"
)

// Start greets the user with the persistent reply keyboard.
func (h *Handlers) Start(c tele.Context) error {
	var msg outbound.Message
	msg.Add(textChoose, format.Escape)
	msg.WithMarkup(keyboard.ReplyButtons([]string{triggerMenu, triggerBuy}))
	return msg.Send(c)
}

// ShowMenu sends the menu photo with its caption. A broken photo file falls
// back to the placeholder image instead of failing the update.
func (h *Handlers) ShowMenu(c tele.Context) error {
	var msg outbound.Message
	msg.Add(textMenuCaption, format.Escape)
	msg.AttachPhoto(h.cfg.Assets.MenuPhoto, h.cfg.Assets.FallbackPhoto)
	return msg.Send(c)
}
