package server

import (
	"log/slog"
	"net/http"

	"ctchen222/Tic-Tac-Toe-Page/internal/api/response"
	"ctchen222/Tic-Tac-Toe-Page/internal/session"
	"ctchen222/Tic-Tac-Toe-Page/internal/view"
	"ctchen222/Tic-Tac-Toe-Page/pkg/proto"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (s *Server) handlePage(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handlePage")
	defer span.End()

	sess := s.session(c)
	span.SetAttributes(attribute.String("session.id", sess.ID))

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := view.Render(c.Writer, view.PageTemplate, modelOf(sess.Snapshot())); err != nil {
		slog.ErrorContext(ctx, "Failed to render page", "session.id", sess.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to render page")
	}
}

// handleFormMove applies a move posted by the no-script form. Bad input is
// ignored just like a click on an occupied cell.
func (s *Server) handleFormMove(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleFormMove")
	defer span.End()

	sess := s.session(c)
	span.SetAttributes(attribute.String("session.id", sess.ID))

	var req proto.MoveRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(ctx, "Ignoring invalid move form", "session.id", sess.ID, "error", err)
	} else {
		_, applied := sess.Move(ctx, *req.Index)
		span.SetAttributes(attribute.Int("move.index", *req.Index), attribute.Bool("move.applied", applied))
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleFormReset(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleFormReset")
	defer span.End()

	sess := s.session(c)
	span.SetAttributes(attribute.String("session.id", sess.ID))
	sess.Reset(ctx)

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleAPIState(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "server.handleAPIState")
	defer span.End()

	sess := s.session(c)
	span.SetAttributes(attribute.String("session.id", sess.ID))
	response.SuccessResponse(c, stateOf(sess.Snapshot(), false))
}

func (s *Server) handleAPIMove(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleAPIMove")
	defer span.End()

	sess := s.session(c)
	span.SetAttributes(attribute.String("session.id", sess.ID))

	var req proto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move request")
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, applied := sess.Move(ctx, *req.Index)
	span.SetAttributes(attribute.Int("move.index", *req.Index), attribute.Bool("move.applied", applied))
	response.SuccessResponse(c, stateOf(snap, applied))
}

func (s *Server) handleAPIReset(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleAPIReset", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
	))
	defer span.End()

	sess := s.session(c)
	span.SetAttributes(attribute.String("session.id", sess.ID))
	response.SuccessResponse(c, stateOf(sess.Reset(ctx), false))
}

func (s *Server) handleHealth(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "server.handleHealth")
	defer span.End()

	response.SuccessResponseContent(c, "ok")
}

func modelOf(snap session.Snapshot) view.Model {
	return view.New(snap.Board, snap.Turn, snap.Result)
}

func stateOf(snap session.Snapshot, applied bool) *proto.GameState {
	state := &proto.GameState{
		Board:   snap.Board[:],
		Turn:    snap.Turn,
		Status:  view.StatusText(snap.Turn, snap.Result),
		Result:  snap.Result.State,
		Winner:  snap.Result.Winner,
		Applied: applied,
	}
	if snap.Result.Winner != "" {
		state.Line = snap.Result.Line[:]
	}
	return state
}
