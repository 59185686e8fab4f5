package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snippetd/snippetd/internal/logger"
	"github.com/snippetd/snippetd/internal/snippet"
	mongostore "github.com/snippetd/snippetd/internal/store/mongo"
)

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return "stub summary", nil
}

// setupStore connects to the MongoDB given by MONGODB_URI and hands back a
// store over a throwaway database. Skips when no server is configured.
func setupStore(t *testing.T) *mongostore.Store {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set, skipping store integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	db := client.Database("snippetd_test")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return mongostore.NewStore(db)
}

func TestSnippetRoundTrip(t *testing.T) {
	store := setupStore(t)
	svc := snippet.NewService(store, stubSummarizer{}, logger.New("error", false))
	ctx := context.Background()

	texts := []string{
		"plain ascii text",
		"unicode: 你好世界 🚀",
		"whitespace kept verbatim:\n\r\t  ",
		"quotes: \"double\" and 'single'",
	}

	ids := make(map[string]string, len(texts))
	for _, text := range texts {
		created, err := svc.Create(ctx, text)
		if err != nil {
			t.Fatalf("Create(%q): %v", text, err)
		}
		if created.Summary != "stub summary" {
			t.Errorf("summary = %q, want %q", created.Summary, "stub summary")
		}
		id := created.ID.Hex()
		if _, dup := ids[id]; dup {
			t.Fatalf("id %q issued twice", id)
		}
		ids[id] = text
	}

	// Each id fetches exactly its own text, byte for byte.
	for id, want := range ids {
		found, err := svc.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID(%q): %v", id, err)
		}
		if found.Text != want {
			t.Errorf("GetByID(%q) text = %q, want %q", id, found.Text, want)
		}
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List(): %v", err)
	}
	if len(all) != len(texts) {
		t.Fatalf("List() returned %d records, want %d", len(all), len(texts))
	}
	for _, got := range all {
		if want, ok := ids[got.ID.Hex()]; !ok || got.Text != want {
			t.Errorf("List() record %s has text %q, want %q", got.ID.Hex(), got.Text, want)
		}
	}
}

func TestSnippetTimestamps(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	created, err := store.Create(ctx, "text", "summary")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	after := time.Now().UTC().Add(time.Second)

	if created.CreatedAt.Before(before) || created.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v, want within [%v, %v]", created.CreatedAt, before, after)
	}
	if !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want equal to CreatedAt %v", created.UpdatedAt, created.CreatedAt)
	}
}

func TestGetByIDAbsent(t *testing.T) {
	store := setupStore(t)
	svc := snippet.NewService(store, stubSummarizer{}, logger.New("error", false))

	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	if !errors.Is(err, snippet.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
