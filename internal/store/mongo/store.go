package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/snippetd/snippetd/internal/domain"
)

// CollectionSnippets is the collection holding snippet records.
const CollectionSnippets = "snippets"

// ErrNotFound is returned when no record matches the given id,
// including ids that are not valid ObjectID hex at all.
var ErrNotFound = errors.New("snippet not found")

// Store handles MongoDB operations for snippet records.
type Store struct {
	snippets *mongo.Collection
}

// NewStore creates a new MongoDB store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		snippets: db.Collection(CollectionSnippets),
	}
}

// Create inserts a new snippet record. The id and both timestamps are
// assigned here; callers never supply them.
func (s *Store) Create(ctx context.Context, text, summary string) (*domain.Snippet, error) {
	now := time.Now().UTC()
	snippet := &domain.Snippet{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Summary:   summary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.snippets.InsertOne(ctx, snippet); err != nil {
		return nil, fmt.Errorf("failed to insert snippet: %w", err)
	}

	return snippet, nil
}

// FindByID retrieves a snippet by its hex id. A malformed id is rejected
// cleanly with ErrNotFound, without a round-trip to the server.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.Snippet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var snippet domain.Snippet
	err = s.snippets.FindOne(ctx, bson.M{"_id": oid}).Decode(&snippet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snippet: %w", err)
	}

	return &snippet, nil
}

// FindAll retrieves every snippet record. Order follows storage order and
// is not part of the contract.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Snippet, error) {
	cursor, err := s.snippets.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	snippets := make([]*domain.Snippet, 0)
	if err := cursor.All(ctx, &snippets); err != nil {
		return nil, fmt.Errorf("failed to decode snippets: %w", err)
	}

	return snippets, nil
}
