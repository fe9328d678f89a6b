// Package mongo is the MongoDB docstore backend. Each collection maps to a
// Mongo collection and ids are ObjectID hex strings.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/docstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	URI      string
	Database string
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ docstore.Store = (*Store)(nil)

// New connects to cfg.URI and verifies the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo database is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return docstore.Document{}, docstore.ErrNotFound
	}

	var raw bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return toDocument(raw), nil
}

func (s *Store) Where(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	return s.find(ctx, collection, bson.M{field: bson.M{"$eq": docstore.Normalize(value)}})
}

func (s *Store) All(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.find(ctx, collection, bson.M{})
}

func (s *Store) find(ctx context.Context, collection string, filter bson.M) ([]docstore.Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	docs := []docstore.Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	plan, err := docstore.PlanCreate(data)
	if err != nil {
		return "", err
	}

	oid := primitive.NewObjectID()
	coll := s.db.Collection(collection)

	if len(plan.Timestamps) == 0 {
		doc := bson.M{"_id": oid}
		for k, v := range plan.Set {
			doc[k] = v
		}
		if _, err := coll.InsertOne(ctx, doc); err != nil {
			return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
		}
		return oid.Hex(), nil
	}

	_, err = coll.UpdateOne(ctx, bson.M{"_id": oid}, updateDocument(plan), options.Update().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return oid.Hex(), nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	plan, err := docstore.PlanUpdate(fields)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return docstore.ErrNotFound
	}

	coll := s.db.Collection(collection)
	update := updateDocument(plan)
	if len(update) == 0 {
		n, err := coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
		}
		if n == 0 {
			return docstore.ErrNotFound
		}
		return nil
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return docstore.ErrNotFound
	}

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// updateDocument maps a plan onto Mongo update operators. Empty operators are
// omitted because the server rejects them.
func updateDocument(plan docstore.Plan) bson.M {
	update := bson.M{}

	if len(plan.Set) > 0 {
		set := bson.M{}
		for k, v := range plan.Set {
			set[k] = v
		}
		update["$set"] = set
	}

	if len(plan.Timestamps) > 0 {
		stamps := bson.M{}
		for _, k := range plan.Timestamps {
			stamps[k] = bson.M{"$type": "date"}
		}
		update["$currentDate"] = stamps
	}

	if len(plan.Union) > 0 {
		union := bson.M{}
		for k, values := range plan.Union {
			union[k] = bson.M{"$each": values}
		}
		update["$addToSet"] = union
	}

	if len(plan.Remove) > 0 {
		pull := bson.M{}
		for k, values := range plan.Remove {
			pull[k] = bson.M{"$in": values}
		}
		update["$pull"] = pull
	}

	return update
}

func toDocument(raw bson.M) docstore.Document {
	var id string
	if oid, ok := raw["_id"].(primitive.ObjectID); ok {
		id = oid.Hex()
	}

	data := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		data[k] = fromBSON(v)
	}
	return docstore.Document{ID: id, Data: docstore.NormalizeMap(data)}
}

func fromBSON(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.A:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = fromBSON(e)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = fromBSON(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	}
	return v
}
