package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/rituday/config"
	"github.com/oksasatya/rituday/internal/application"
	repo "github.com/oksasatya/rituday/internal/domain/repository"
	"github.com/oksasatya/rituday/internal/infrastructure/memory"
	"github.com/oksasatya/rituday/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/rituday/internal/infrastructure/postgres"
	"github.com/oksasatya/rituday/internal/infrastructure/search"
	"github.com/oksasatya/rituday/pkg/helpers"
)

// Container holds the components shared by the router modules.
// Optional infrastructure (Redis, Publisher, Search) is nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	Users   repo.UserRepository
	Rituals repo.RitualRepository

	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	Search    *search.RitualIndex

	closers []func()
}

// NewMemory builds a container backed by the in-memory store with no optional infrastructure.
func NewMemory(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Users:   memory.NewUserRepository(),
		Rituals: memory.NewRitualRepository(),
	}
}

// Build connects the store selected by cfg.StoreDriver and every optional
// backend that is configured. Close releases them.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}
	if err := c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		c.Redis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			// notifications are optional; the API keeps serving without them
			logger.WithError(err).Warn("rabbitmq unavailable, email notifications disabled")
		} else {
			c.Publisher = pub
			c.closers = append(c.closers, pub.Close)
		}
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	c.attachSearch(es)
	return c, nil
}

func (c *Container) attachSearch(es *elasticsearch.Client) {
	if es == nil {
		return
	}
	c.Search = search.NewRitualIndex(es, c.Config.ESRitualsIndex, c.Logger)
}

func (c *Container) openStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StoreDriver {
	case config.StoreMemory:
		c.Users = memory.NewUserRepository()
		c.Rituals = memory.NewRitualRepository()
		return nil

	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		c.usePostgres(pool)
		return nil

	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, cfg.MongoURI, cfg.MongoTimeout)
		if err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
		c.closers = append(c.closers, func() { _ = client.Disconnect(context.Background()) })
		return c.useMongo(ctx, client.Database(cfg.MongoDB))

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (c *Container) usePostgres(pool *pgxpool.Pool) {
	c.Users = pginfra.NewUserRepository(pool)
	c.Rituals = pginfra.NewRitualRepository(pool)
}

func (c *Container) useMongo(ctx context.Context, db *mongo.Database) error {
	users, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		return fmt.Errorf("mongo users: %w", err)
	}
	rituals, err := mongodb.NewRitualRepository(ctx, db)
	if err != nil {
		return fmt.Errorf("mongo rituals: %w", err)
	}
	c.Users, c.Rituals = users, rituals
	return nil
}

// Notifier returns the email job publisher, or nil when mail sending is off.
func (c *Container) Notifier() application.Notifier {
	if c.Publisher == nil || !c.Config.MailSendEnabled {
		return nil
	}
	return c.Publisher
}

// Indexer returns the ritual search index, or nil when search is not configured.
func (c *Container) Indexer() application.RitualIndexer {
	if c.Search == nil {
		return nil
	}
	return c.Search
}

func (c *Container) AccountService() *application.AccountService {
	svc := application.NewAccountService(c.Users, c.JWT, c.Logger, c.Notifier(), c.Config.AppName)
	svc.Passwords = helpers.NewPasswordHasher(c.Config.BcryptCost)
	return svc
}

func (c *Container) RitualService() *application.RitualService {
	return application.NewRitualService(c.Rituals, c.Users, c.Indexer(), c.Logger)
}

// Close releases connections in reverse order of opening.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
