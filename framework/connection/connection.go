package connection

import (
	"context"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/logger"
)

const (
	// CtxFirestoreKey is how firestore connections are stored/retrieved.
	CtxFirestoreKey = "app-firestore"
)

// Connection carries the process-wide external clients. Clients are
// constructed once at startup and passed by reference into handlers and
// services; there is no lazily-initialized package state.
type Connection struct {
	*FirestoreClient
	*AuthClient
}

// NewConnection initializes db and identity-provider connections necessary
// for api support.
func NewConnection(ctx context.Context, log *logger.Logging) (*Connection, error) {
	fs, err := NewFirestore(ctx, log)
	if err != nil {
		return nil, err
	}

	authClient, err := NewAuth(ctx, log)
	if err != nil {
		return nil, err
	}

	return &Connection{
		fs,
		authClient,
	}, nil
}

// Firestore returns a firestore connection that was stored in context.
// it returns by default a firestore connection, if there was not on context.
func (c *Connection) Firestore(ctx context.Context) *firestore.Client {
	if fs, ok := ctx.Value(CtxFirestoreKey).(*firestore.Client); ok {
		return fs
	}

	return c.fs
}

// Auth returns the firebase auth admin client.
func (c *Connection) Auth(ctx context.Context) *auth.Client {
	return c.authClient
}

// FirestoreWithContext stores under gin context, a firestore connection.
func (c *Connection) FirestoreWithContext(ctx *gin.Context) {
	ctx.Set(CtxFirestoreKey, c.fs)
}

type FirestoreFromContextFun = func(ctx context.Context) *firestore.Client
