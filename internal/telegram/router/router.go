// Package router wires registry entries to telebot endpoints, logging one
// summary line per handled update.
package router

import (
	"time"

	tg "github.com/skeemans/cafebot/internal/telegram"
	"github.com/skeemans/cafebot/internal/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for a conversation manager.
type FSM interface {
	InProgress(userID int64) bool
	Handle(c tele.Context) error
}

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		h := def.Handler
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(adminOpts)(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  summarized(name, h),
		})
	}
	return routes
}

// TextRoute builds the handler for plain text updates. An in-progress
// conversation takes priority over triggers; unmatched text is dropped
// without a reply.
func TextRoute(fsmMgr FSM, reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.Handle(c)
			})
		}

		if reg != nil {
			if trigger, ok := reg.TriggerFor(text); ok && trigger.Handler != nil {
				name := trigger.Name
				if name == "" {
					name = normalizeHandlerName(trigger.Prefix)
				}
				return handleWithSummary(c, name, start, "", "", func() error {
					return trigger.Handler(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  summarizedRaw(handler),
	}
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// Unknown callback keys only get an ACK so the client stops its spinner.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, _ := middleware.ParseCallback(c.Callback())
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			extras = append(extras, slog.String("reason", "not_found"))
			logHandlerSummary(c, name, start, "skip", "ok", nil, extras...)
			return nil
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  summarizedRaw(handler),
	}
}

func summarized(name string, h tele.HandlerFunc) tele.HandlerFunc {
	wrapped := func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, name, start, "", "", func() error {
			return h(c)
		})
	}
	return summarizedRaw(wrapped)
}

func summarizedRaw(h tele.HandlerFunc) tele.HandlerFunc {
	return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
}
