package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin/visibility"
)

// MongoStore persists trees, layouts, and collapse state in MongoDB.
// Documents are upserted, so Put operations are idempotent.
type MongoStore struct {
	client   *mongo.Client
	trees    *mongo.Collection
	layouts  *mongo.Collection
	collapse *mongo.Collection
}

// NewMongoStore connects to MongoDB and uses the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:   client,
		trees:    db.Collection("trees"),
		layouts:  db.Collection("layouts"),
		collapse: db.Collection("collapse"),
	}, nil
}

type layoutDoc struct {
	ID     string       `bson:"_id"` // treeID + ":" + cache key
	TreeID string       `bson:"tree_id"`
	Layout graph.Layout `bson:"layout"`
}

type collapseDoc struct {
	ID    string           `bson:"_id"` // treeID
	State visibility.State `bson:"state"`
}

var upsert = options.Replace().SetUpsert(true)

// GetTree retrieves a tree by ID.
func (s *MongoStore) GetTree(ctx context.Context, id string) (Tree, error) {
	var t Tree
	err := s.trees.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Tree{}, ErrNotFound
	}
	if err != nil {
		return Tree{}, fmt.Errorf("get tree %s: %w", id, err)
	}
	return t, nil
}

// PutTree upserts a tree.
func (s *MongoStore) PutTree(ctx context.Context, t Tree) error {
	if _, err := s.trees.ReplaceOne(ctx, bson.M{"_id": t.ID}, t, upsert); err != nil {
		return fmt.Errorf("put tree %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTree removes a tree and everything derived from it.
func (s *MongoStore) DeleteTree(ctx context.Context, id string) error {
	if _, err := s.trees.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete tree %s: %w", id, err)
	}
	if _, err := s.layouts.DeleteMany(ctx, bson.M{"tree_id": id}); err != nil {
		return fmt.Errorf("delete layouts for %s: %w", id, err)
	}
	if _, err := s.collapse.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete collapse for %s: %w", id, err)
	}
	return nil
}

// ListTrees returns all trees sorted by ID, without people payloads.
func (s *MongoStore) ListTrees(ctx context.Context) ([]Tree, error) {
	opts := options.Find().
		SetProjection(bson.M{"people": 0}).
		SetSort(bson.M{"_id": 1})
	cur, err := s.trees.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	var out []Tree
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode trees: %w", err)
	}
	return out, nil
}

// GetLayout retrieves a computed layout.
func (s *MongoStore) GetLayout(ctx context.Context, treeID, key string) (graph.Layout, error) {
	var doc layoutDoc
	err := s.layouts.FindOne(ctx, bson.M{"_id": treeID + ":" + key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Layout{}, ErrNotFound
	}
	if err != nil {
		return graph.Layout{}, fmt.Errorf("get layout %s: %w", key, err)
	}
	return doc.Layout, nil
}

// PutLayout upserts a computed layout.
func (s *MongoStore) PutLayout(ctx context.Context, treeID, key string, l graph.Layout) error {
	doc := layoutDoc{ID: treeID + ":" + key, TreeID: treeID, Layout: l}
	if _, err := s.layouts.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert); err != nil {
		return fmt.Errorf("put layout %s: %w", key, err)
	}
	return nil
}

// GetCollapse retrieves the collapse state for a tree; empty if never saved.
func (s *MongoStore) GetCollapse(ctx context.Context, treeID string) (visibility.State, error) {
	var doc collapseDoc
	err := s.collapse.FindOne(ctx, bson.M{"_id": treeID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return visibility.State{}, nil
	}
	if err != nil {
		return visibility.State{}, fmt.Errorf("get collapse %s: %w", treeID, err)
	}
	return doc.State, nil
}

// PutCollapse upserts the collapse state for a tree.
func (s *MongoStore) PutCollapse(ctx context.Context, treeID string, st visibility.State) error {
	doc := collapseDoc{ID: treeID, State: st}
	if _, err := s.collapse.ReplaceOne(ctx, bson.M{"_id": treeID}, doc, upsert); err != nil {
		return fmt.Errorf("put collapse %s: %w", treeID, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
