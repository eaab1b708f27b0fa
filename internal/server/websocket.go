package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ctchen222/Tic-Tac-Toe-Page/internal/session"
	"ctchen222/Tic-Tac-Toe-Page/internal/validator"
	"ctchen222/Tic-Tac-Toe-Page/internal/view"
	"ctchen222/Tic-Tac-Toe-Page/pkg/proto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleWebSocket upgrades the connection and serves the caller's session
// until the browser goes away. The session stays attached, and so is never
// swept, while the connection is open. Each client message is answered with
// exactly one state or error message.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	sess := s.resolveSession(c, s.store.Attach)
	defer sess.Detach()
	span.SetAttributes(attribute.String("session.id", sess.ID))

	header := http.Header{}
	if cookies := c.Writer.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header["Set-Cookie"] = cookies
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}
	defer conn.Close()

	if err := writeState(ctx, conn, sess.Snapshot(), false); err != nil {
		span.RecordError(err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.WarnContext(ctx, "Websocket read error", "session.id", sess.ID, "error", err)
			}
			return
		}

		if err := s.handleMessage(ctx, conn, sess, data); err != nil {
			slog.WarnContext(ctx, "Websocket write error", "session.id", sess.ID, "error", err)
			span.RecordError(err)
			return
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, conn *websocket.Conn, sess *session.Session, data []byte) error {
	ctx, span := tracer.Start(ctx, "server.handleMessage", trace.WithAttributes(
		attribute.String("session.id", sess.ID),
	))
	defer span.End()

	var msg proto.ClientToServerMessage
	if err := validator.DecodeJSON(data, &msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid client message")
		return conn.WriteJSON(&proto.ServerToClientMessage{Type: proto.TypeError, Reason: err.Error()})
	}
	span.SetAttributes(attribute.String("message.type", msg.Type))

	switch msg.Type {
	case proto.TypeMove:
		if msg.Index == nil {
			err := errors.New("move requires an index")
			span.RecordError(err)
			return conn.WriteJSON(&proto.ServerToClientMessage{Type: proto.TypeError, Reason: err.Error()})
		}
		snap, applied := sess.Move(ctx, *msg.Index)
		span.SetAttributes(attribute.Int("move.index", *msg.Index), attribute.Bool("move.applied", applied))
		return writeState(ctx, conn, snap, applied)
	case proto.TypeReset:
		return writeState(ctx, conn, sess.Reset(ctx), false)
	default:
		return writeState(ctx, conn, sess.Snapshot(), false)
	}
}

func writeState(ctx context.Context, conn *websocket.Conn, snap session.Snapshot, applied bool) error {
	html, err := view.RenderString(view.CardTemplate, modelOf(snap))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to render board", "error", err)
	}

	return conn.WriteJSON(&proto.ServerToClientMessage{
		Type:  proto.TypeState,
		State: stateOf(snap, applied),
		HTML:  html,
	})
}
