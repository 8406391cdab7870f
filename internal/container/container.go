package container

import (
	"errors"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/config"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
)

// Container holds the process-wide clients built once in main and handed to
// the router. Optional clients (GCS, ES) are nil when not configured.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	JWT    *helpers.JWTManager
	Mail   mailer.Dispatcher

	closers []func() error
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Container{Cfg: cfg, Logger: logger, JWT: helpers.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)}
}

// OnClose registers fn to run on Close, in reverse registration order
func (c *Container) OnClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Cache returns Redis as a Cmdable, or a nil interface when Redis is unset
func (c *Container) Cache() redis.Cmdable {
	if c.Redis == nil {
		return nil
	}
	return c.Redis
}
