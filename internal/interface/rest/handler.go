package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"github.com/petalert/petalert/client"
	"github.com/petalert/petalert/internal/domain"
	"github.com/petalert/petalert/internal/infra/metrics"
	"github.com/petalert/petalert/internal/interface/rest/middleware"
	"github.com/petalert/petalert/internal/interface/rest/presenter"
	"github.com/petalert/petalert/internal/service"
	"github.com/petalert/petalert/internal/usecase"
)

type Handler struct {
	sessions *service.SessionService
	metrics  *metrics.Metrics
	clock    func() time.Time
}

func NewHandler(
	sessions *service.SessionService,
	metrics *metrics.Metrics,
	clock func() time.Time,
) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		clock:    clock,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealth)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	api := e.Group("/api/v1", middleware.RequireToken)
	api.GET("/board", h.handleBoard)
	api.GET("/admin/overview", h.handleOverview)

	registerKind(api, h, domain.KindAppointment, func(s *usecase.Session) *usecase.RecordUsecase[domain.Appointment] { return s.Appointments })
	registerKind(api, h, domain.KindVaccination, func(s *usecase.Session) *usecase.RecordUsecase[domain.Vaccination] { return s.Vaccinations })
	registerKind(api, h, domain.KindLostFound, func(s *usecase.Session) *usecase.RecordUsecase[domain.LostFound] { return s.LostFound })
	registerKind(api, h, domain.KindMemorial, func(s *usecase.Session) *usecase.RecordUsecase[domain.Memorial] { return s.Memorials })
}

func (h *Handler) session(c echo.Context) *usecase.Session {
	ctx := c.Request().Context()
	return h.sessions.Get(ctx, middleware.Token(ctx))
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok", "sessions": h.sessions.Count()})
}

func (h *Handler) handleBoard(c echo.Context) error {
	board, err := usecase.NewBoardUsecase(h.session(c)).Get(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, board)
}

func (h *Handler) handleOverview(c echo.Context) error {
	overview, err := usecase.NewOverviewUsecase(h.session(c)).Get(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, overview)
}

// fail renders err. A rejected token also drops the session so the next
// request starts clean.
func (h *Handler) fail(c echo.Context, err error) error {
	if client.IsStatus(err, http.StatusUnauthorized) {
		h.sessions.Forget(middleware.Token(c.Request().Context()))
	}
	return presenter.Error(c, err)
}

type kindHandler[T domain.Record] struct {
	*Handler
	kind domain.Kind
	pick func(*usecase.Session) *usecase.RecordUsecase[T]
}

func registerKind[T domain.Record](g *echo.Group, h *Handler, kind domain.Kind, pick func(*usecase.Session) *usecase.RecordUsecase[T]) {
	k := &kindHandler[T]{Handler: h, kind: kind, pick: pick}
	base := "/" + string(kind)
	g.GET(base, k.handleList)
	g.POST(base, k.handleCreate)
	g.PUT(base+"/:id", k.handleUpdate)
	g.DELETE(base+"/:id", k.handleDelete)
}

func (k *kindHandler[T]) screen(c echo.Context) *usecase.RecordUsecase[T] {
	return k.pick(k.session(c))
}

// handleList refreshes the screen and renders its view. With ?cached=1 an
// already loaded screen is served as is.
func (k *kindHandler[T]) handleList(c echo.Context) error {
	ctx := c.Request().Context()
	screen := k.screen(c)

	var err error
	if c.QueryParam("cached") == "1" {
		_, err = screen.EnsureLoaded(ctx)
	} else {
		_, err = screen.Refresh(ctx)
	}
	if errors.Is(err, usecase.ErrStaleResult) {
		k.metrics.StaleResult(string(k.kind))
		err = nil
	}
	if err != nil {
		return k.fail(c, err)
	}

	view := screen.View(k.clock())

	tag, err := etag(view)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set("ETag", tag)
	if c.Request().Header.Get("If-None-Match") == tag {
		return c.NoContent(http.StatusNotModified)
	}
	return presenter.OK(c, view)
}

func (k *kindHandler[T]) handleCreate(c echo.Context) error {
	var draft T
	if err := c.Bind(&draft); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	created, err := k.screen(c).Create(c.Request().Context(), draft)
	if err != nil {
		return k.fail(c, err)
	}
	return presenter.Created(c, created)
}

func (k *kindHandler[T]) handleUpdate(c echo.Context) error {
	var draft T
	if err := c.Bind(&draft); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	updated, err := k.screen(c).Update(c.Request().Context(), c.Param("id"), draft)
	if err != nil {
		return k.fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (k *kindHandler[T]) handleDelete(c echo.Context) error {
	err := k.screen(c).Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return k.fail(c, err)
	}
	return presenter.NoContent(c)
}

// etag hashes the view without its reference instant.
func etag[T domain.Record](view usecase.View[T]) (string, error) {
	view.Reference = time.Time{}
	body, err := json.Marshal(view)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body)), nil
}
