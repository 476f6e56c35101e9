//go:build integration

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("LEWIS_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx := context.Background()

	s, err := NewMongoStore(ctx, MongoOptions{
		URI:        uri,
		Database:   "lewis_test",
		Collection: fmt.Sprintf("structures_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close(ctx)
	}()

	exercise(t, s)
}
