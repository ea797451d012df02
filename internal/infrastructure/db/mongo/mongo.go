package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const appName = "deliverynotes-api"

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect opens a client, pings the primary and returns the selected
// database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName(appName))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Store bundles the repositories backed by one database.
type Store struct {
	Users         *UserRepository
	Clients       *ClientRepository
	Projects      *ProjectRepository
	DeliveryNotes *DeliveryNoteRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Users:         NewUserRepository(db),
		Clients:       NewClientRepository(db),
		Projects:      NewProjectRepository(db),
		DeliveryNotes: NewDeliveryNoteRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		s.Users.EnsureIndexes,
		s.Clients.EnsureIndexes,
		s.Projects.EnsureIndexes,
		s.DeliveryNotes.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
