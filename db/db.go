package db

import "context"

// StoreType selects where the seller profile lives.
type StoreType string

const (
	Static   StoreType = "static"
	Postgres StoreType = "postgres"
	Mongo    StoreType = "mongo"
)

type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
