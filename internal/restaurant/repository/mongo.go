package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Store against a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// buildQuery translates a Filter into a Mongo predicate. Country is an
// anchored case-insensitive regex (full-value match); the other fields are
// unanchored case-insensitive regexes (substring match). User input is
// meta-quoted so it is never interpreted as a pattern.
func buildQuery(f Filter) bson.M {
	q := bson.M{}
	if f.Country != "" {
		q["country"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.Country) + "$", Options: "i"}
	}
	if f.State != "" {
		q["state"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.State), Options: "i"}
	}
	if f.City != "" {
		q["city"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.City), Options: "i"}
	}
	if f.Cuisine != "" {
		q["cuisine"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Cuisine), Options: "i"}
	}
	if f.PostalCode != "" {
		q["postal_code"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.PostalCode), Options: "i"}
	}
	return q
}

func (m *MongoRepo) Insert(ctx context.Context, r *restaurant.Restaurant) (string, error) {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if _, err := m.col.InsertOne(ctx, r); err != nil {
		return "", err
	}
	return r.ID.Hex(), nil
}

func (m *MongoRepo) InsertMany(ctx context.Context, rs []*restaurant.Restaurant) (int, error) {
	if len(rs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(rs))
	for _, r := range rs {
		if r.ID.IsZero() {
			r.ID = primitive.NewObjectID()
		}
		r.CreatedAt = now
		r.UpdatedAt = now
		docs = append(docs, r)
	}
	res, err := m.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (m *MongoRepo) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a stored document
		return nil, ErrNotFound
	}
	var r restaurant.Restaurant
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*restaurant.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	delete(set, "_id")
	delete(set, "id")
	delete(set, "createdAt")
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated restaurant.Restaurant
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Find(ctx context.Context, f Filter, s Sort, skip, limit int64) ([]*restaurant.Restaurant, error) {
	dir := 1
	if s.Desc {
		dir = -1
	}
	field := s.Field
	if field == "" {
		field = "name"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := m.col.Find(ctx, buildQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAll(ctx, cur)
}

func (m *MongoRepo) Count(ctx context.Context, f Filter) (int64, error) {
	return m.col.CountDocuments(ctx, buildQuery(f))
}

func (m *MongoRepo) Sample(ctx context.Context, f Filter, size int64) ([]*restaurant.Restaurant, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildQuery(f)}},
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
	}
	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAll(ctx, cur)
}

func (m *MongoRepo) Distinct(ctx context.Context, field string, f Filter) ([]string, error) {
	vals, err := m.col.Distinct(ctx, field, buildQuery(f))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MongoRepo) TextSearch(ctx context.Context, query, country string) ([]*restaurant.Restaurant, error) {
	filter := bson.M{
		"$text":   bson.M{"$search": query},
		"country": country,
	}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAll(ctx, cur)
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*restaurant.Restaurant, error) {
	out := []*restaurant.Restaurant{}
	for cur.Next(ctx) {
		var r restaurant.Restaurant
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
