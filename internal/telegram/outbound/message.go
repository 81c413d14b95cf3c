// Package outbound assembles outgoing messages: text fragments with
// formatter chains, an optional photo, and an optional keyboard. A Message is
// built by one handler, sent exactly once, and discarded.
package outbound

import (
	"errors"
	"strings"

	"github.com/skeemans/cafebot/internal/telegram/format"

	tele "gopkg.in/telebot.v4"
)

// Message is a plain mutable builder for one outgoing Telegram message.
// The zero value is ready to use.
type Message struct {
	parts         []string
	photoPath     string
	fallbackPhoto string
	markup        *tele.ReplyMarkup
}

// Add appends a fragment, running the formatters over it left to right.
// Formatting happens now, not at send time.
func (m *Message) Add(text string, formatters ...format.Formatter) {
	m.parts = append(m.parts, format.Apply(text, formatters...))
}

// AddTitle appends an escaped bold fragment followed by a newline.
func (m *Message) AddTitle(title string, formatters ...format.Formatter) {
	chain := append([]format.Formatter{format.Escape, format.Bold}, formatters...)
	m.Add(title, chain...)
	m.Newline(1)
}

// AddLine appends a newline and then the fragment.
func (m *Message) AddLine(text string, formatters ...format.Formatter) {
	m.Newline(1)
	m.Add(text, formatters...)
}

// Newline appends n line breaks.
func (m *Message) Newline(n int) {
	for i := 0; i < n; i++ {
		m.parts = append(m.parts, "\n")
	}
}

// AttachPhoto sets the photo sent with the message and the placeholder used
// if the transport rejects it. Replaces any previous attachment.
func (m *Message) AttachPhoto(path, fallbackPath string) {
	m.photoPath = path
	m.fallbackPhoto = fallbackPath
}

// WithMarkup sets the keyboard. Inline and reply keyboards are mutually
// exclusive per message; the last call wins.
func (m *Message) WithMarkup(markup *tele.ReplyMarkup) {
	m.markup = markup
}

// Text returns the accumulated message text.
func (m *Message) Text() string {
	return strings.Join(m.parts, "")
}

func (m *Message) sendOptions() *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:   tele.ModeMarkdownV2,
		ReplyMarkup: m.markup,
	}
}

// Send dispatches the message: a captioned photo when one is attached,
// plain text otherwise. A rejected photo is retried once with the fallback
// placeholder; a second failure propagates.
func (m *Message) Send(c tele.Context) error {
	if m.photoPath == "" {
		return c.Send(m.Text(), m.sendOptions())
	}
	return m.sendPhoto(c)
}

func (m *Message) sendPhoto(c tele.Context) error {
	photo := &tele.Photo{
		File:    tele.FromDisk(m.photoPath),
		Caption: m.Text(),
	}
	err := c.Send(photo, m.sendOptions())
	if err == nil {
		return nil
	}
	if !isRejectedUpload(err) || m.fallbackPhoto == "" {
		return err
	}

	placeholder := &tele.Photo{
		File:    tele.FromDisk(m.fallbackPhoto),
		Caption: m.Text(),
	}
	return c.Send(placeholder, m.sendOptions())
}

// Edit rewrites the message the current update refers to (for callbacks,
// the message carrying the pressed button) instead of sending a new one.
func (m *Message) Edit(c tele.Context) error {
	return c.Edit(m.Text(), m.sendOptions())
}

// isRejectedUpload reports whether the transport refused the attachment
// itself, as opposed to a transient network failure.
func isRejectedUpload(err error) bool {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 400
	}
	return false
}
