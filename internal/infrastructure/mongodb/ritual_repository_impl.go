package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

const ritualCollection = "rituals"

// ritualDocument is the stored shape: {_id, category, content, year, month, day, userEmail}.
type ritualDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Category  string        `bson:"category"`
	Content   string        `bson:"content"`
	Year      int           `bson:"year"`
	Month     int           `bson:"month"`
	Day       int           `bson:"day"`
	UserEmail string        `bson:"userEmail"`
}

func (d *ritualDocument) toEntity() entity.Ritual {
	return entity.Ritual{
		ID:        d.ID.Hex(),
		Category:  d.Category,
		Content:   d.Content,
		Year:      d.Year,
		Month:     d.Month,
		Day:       d.Day,
		UserEmail: d.UserEmail,
	}
}

type RitualRepository struct {
	coll *mongo.Collection
}

// NewRitualRepository ensures the calendar lookup index exists.
func NewRitualRepository(ctx context.Context, db *mongo.Database) (*RitualRepository, error) {
	coll := db.Collection(ritualCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}, {Key: "day", Value: 1}}},
		{Keys: bson.D{{Key: "userEmail", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create ritual indexes: %w", err)
	}
	return &RitualRepository{coll: coll}, nil
}

func (r *RitualRepository) find(ctx context.Context, filter bson.M) ([]entity.Ritual, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]entity.Ritual, 0)
	for cursor.Next(ctx) {
		var doc ritualDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RitualRepository) FindByYearMonth(ctx context.Context, year, month int) ([]entity.Ritual, error) {
	return r.find(ctx, bson.M{"year": year, "month": month})
}

func (r *RitualRepository) FindByYearMonthDay(ctx context.Context, year, month, day int) ([]entity.Ritual, error) {
	return r.find(ctx, bson.M{"year": year, "month": month, "day": day})
}

func (r *RitualRepository) FindByID(ctx context.Context, id string) (*entity.Ritual, error) {
	oid, err := repository.ParseRitualID(id)
	if err != nil {
		return nil, err
	}
	var doc ritualDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	x := doc.toEntity()
	return &x, nil
}

func (r *RitualRepository) Create(ctx context.Context, x *entity.Ritual) error {
	doc := ritualDocument{
		ID:        bson.NewObjectID(),
		Category:  x.Category,
		Content:   x.Content,
		Year:      x.Year,
		Month:     x.Month,
		Day:       x.Day,
		UserEmail: x.UserEmail,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	x.ID = doc.ID.Hex()
	return nil
}

func (r *RitualRepository) UpdateContent(ctx context.Context, id, content string) (bool, error) {
	oid, err := repository.ParseRitualID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *RitualRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := repository.ParseRitualID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

var _ repository.RitualRepository = (*RitualRepository)(nil)
