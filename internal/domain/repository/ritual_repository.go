package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/rituday/internal/domain/entity"
)

// RitualRepository defines storage operations for ritual entries.
// Lists are returned in insertion order.
type RitualRepository interface {
	FindByYearMonth(ctx context.Context, year, month int) ([]entity.Ritual, error)
	FindByYearMonthDay(ctx context.Context, year, month, day int) ([]entity.Ritual, error)
	FindByID(ctx context.Context, id string) (*entity.Ritual, error)
	Create(ctx context.Context, r *entity.Ritual) error
	UpdateContent(ctx context.Context, id, content string) (matched bool, err error)
	Delete(ctx context.Context, id string) (deleted bool, err error)
}

// NewRitualID returns a fresh 24-hex document identifier.
func NewRitualID() string {
	return bson.NewObjectID().Hex()
}

// ParseRitualID validates a hex document identifier.
func ParseRitualID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}
	return oid, nil
}

// CanonicalRitualID validates id and returns its lowercase hex form.
// Backends that compare ids as strings key on this form only.
func CanonicalRitualID(id string) (string, error) {
	oid, err := ParseRitualID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}
