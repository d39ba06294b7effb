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

const userCollection = "users"

// userDocument is the stored shape: {_id, id, password, name, email}.
type userDocument struct {
	OID      bson.ObjectID `bson:"_id,omitempty"`
	ID       string        `bson:"id"`
	Password string        `bson:"password"`
	Name     string        `bson:"name"`
	Email    string        `bson:"email"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{ID: d.ID, Password: d.Password, Name: d.Name, Email: d.Email}
}

type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository ensures the unique id and email indexes exist.
func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	coll := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create user indexes: %w", err)
	}
	return &UserRepository{coll: coll}, nil
}

func userFilterDoc(f repository.UserFilter) bson.M {
	filter := bson.M{}
	if f.ID != "" {
		filter["id"] = f.ID
	}
	if f.Name != "" {
		filter["name"] = f.Name
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	return filter
}

func (r *UserRepository) FindOne(ctx context.Context, f repository.UserFilter) (*entity.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, userFilterDoc(f)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) Count(ctx context.Context, f repository.UserFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, userFilterDoc(f))
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	doc := userDocument{ID: u.ID, Password: u.Password, Name: u.Name, Email: u.Email}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdateOne(ctx context.Context, f repository.UserFilter, upd repository.UserUpdate) (bool, error) {
	if f.IsEmpty() {
		return false, repository.ErrEmptyFilter
	}
	set := bson.M{}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if len(set) == 0 {
		return false, errors.New("no user fields to update")
	}
	res, err := r.coll.UpdateOne(ctx, userFilterDoc(f), bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
