package http

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const actorKey = "actor"

// ActorLoader resolves an authenticated user id to the actor the access
// policy reasons about.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID kernel.UUID) (profile.Actor, error)
}

// ProfileActorLoader reads the caller's profile outside of any transaction.
// The read carries the store operation timeout of the unit of work.
type ProfileActorLoader struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewProfileActorLoader(uowFactory ports.UnitOfWorkFactory) ProfileActorLoader {
	return ProfileActorLoader{uowFactory: uowFactory}
}

func (l ProfileActorLoader) LoadActor(ctx context.Context, userID kernel.UUID) (profile.Actor, error) {
	p, err := l.uowFactory.Create().ProfileRepository().Get(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, &errs.AccessDeniedError{
			Kind: errs.ErrUnauthorized, Action: "authenticate", Reason: "no profile for this user",
		}
	}
	if err != nil {
		return nil, err
	}
	return p.Actor(), nil
}

type Authenticator struct {
	verifier ports.TokenVerifier
	actors   ActorLoader
}

func NewAuthenticator(verifier ports.TokenVerifier, actors ActorLoader) *Authenticator {
	return &Authenticator{verifier: verifier, actors: actors}
}

// Middleware requires a bearer token and stores the resolved actor on the
// request context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				return errs.NewUnauthorizedError("authenticate")
			}

			ctx := c.Request().Context()
			userID, err := a.verifier.VerifyToken(ctx, strings.TrimSpace(token))
			if err != nil {
				return err
			}
			actor, err := a.actors.LoadActor(ctx, userID)
			if err != nil {
				return err
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// actorFrom returns the authenticated actor or nil, which every use case
// rejects as unauthenticated.
func actorFrom(c echo.Context) profile.Actor {
	actor, _ := c.Get(actorKey).(profile.Actor)
	return actor
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= 500:
				level = slog.LevelError
			case v.Status >= 400:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if actor := actorFrom(c); actor != nil {
				attrs = append(attrs, slog.String("actor_id", actor.ActorID().String()))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
