//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	sharedMongo     *Container
	sharedMongoErr  error
	sharedMongoOnce sync.Once
)

// GetSharedMongoDB starts one MongoDB container per test binary.
func GetSharedMongoDB(ctx context.Context) (*Container, error) {
	sharedMongoOnce.Do(func() {
		sharedMongo, sharedMongoErr = SetupMongoDB(ctx)
	})
	return sharedMongo, sharedMongoErr
}

// SetupTestMainWithMongoDB wraps m.Run with a shared MongoDB container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := sharedMongo.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to cleanup shared MongoDB container: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the shared MongoDB URI. It panics before
// GetSharedMongoDB succeeded.
func GetSharedContainerURI() string {
	if sharedMongo == nil {
		panic("shared MongoDB container not initialized - call GetSharedMongoDB first")
	}
	return sharedMongo.URI
}

var dbNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_")

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	name := dbNameReplacer.Replace(testName)
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
