package outbound

import (
	"errors"
	"testing"

	"github.com/skeemans/cafebot/internal/telegram/format"

	tele "gopkg.in/telebot.v4"
)

type stubContext struct {
	tele.Context

	sent     []interface{}
	edited   []interface{}
	photoErr error
	failures int
}

func (s *stubContext) Send(what interface{}, opts ...interface{}) error {
	if _, ok := what.(*tele.Photo); ok && s.photoErr != nil && s.failures > 0 {
		s.failures--
		return s.photoErr
	}
	s.sent = append(s.sent, what)
	return nil
}

func (s *stubContext) Edit(what interface{}, opts ...interface{}) error {
	s.edited = append(s.edited, what)
	return nil
}

func TestTextAssembly(t *testing.T) {
	var msg Message
	msg.AddTitle("Останні замовлення")
	msg.Add("разом: 3.5 грн", format.Escape)
	msg.AddLine("готово", format.Escape, format.Italic)

	want := "*Останні замовлення*\n" + `разом: 3\.5 грн` + "\n_готово_"
	if got := msg.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestSendPlainText(t *testing.T) {
	c := &stubContext{}
	var msg Message
	msg.Add("привіт", format.Escape)

	if err := msg.Send(c); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("sent %d messages", len(c.sent))
	}
	if got, ok := c.sent[0].(string); !ok || got != "привіт" {
		t.Fatalf("sent = %v", c.sent[0])
	}
}

func TestSendPhotoFallsBackOnRejectedUpload(t *testing.T) {
	c := &stubContext{
		photoErr: &tele.Error{Code: 400, Description: "wrong file identifier"},
		failures: 1,
	}
	var msg Message
	msg.Add("меню", format.Escape)
	msg.AttachPhoto("pics/menu.jpg", "pics/not_found.jpg")

	if err := msg.Send(c); err != nil {
		t.Fatalf("Send: %v", err)
	}
	photo, ok := c.sent[0].(*tele.Photo)
	if !ok {
		t.Fatalf("sent %T, want *tele.Photo", c.sent[0])
	}
	if photo.Caption != "меню" {
		t.Fatalf("caption = %q", photo.Caption)
	}
}

func TestSendPhotoPropagatesTransportErrors(t *testing.T) {
	wantErr := errors.New("connection reset")
	c := &stubContext{photoErr: wantErr, failures: 2}
	var msg Message
	msg.AttachPhoto("pics/menu.jpg", "pics/not_found.jpg")

	if err := msg.Send(c); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestEditUsesEditNotSend(t *testing.T) {
	c := &stubContext{}
	var msg Message
	msg.Add("До зустрічі! 🙏🏼", format.Escape)

	if err := msg.Edit(c); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if len(c.sent) != 0 {
		t.Fatal("Edit must not send a new message")
	}
	if len(c.edited) != 1 {
		t.Fatalf("edited %d messages", len(c.edited))
	}
}
