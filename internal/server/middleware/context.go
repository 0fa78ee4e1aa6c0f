package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/transmutehq/transmute/internal/artifact"
)

// App carries the request-scoped dependencies of the API: the artifact
// store the read endpoints serve from, the queue channel analyze requests
// publish to, and the data directory jobs ingest from.
type App struct {
	Store   *artifact.Store
	Queue   *amqp091.Channel
	DataDir string
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(
	store *artifact.Store,
	queue *amqp091.Channel,
	dataDir string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				Store:   store,
				Queue:   queue,
				DataDir: dataDir,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
