package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

// RitualRepository keeps rituals in insertion order.
type RitualRepository struct {
	mu      sync.RWMutex
	rituals []entity.Ritual
}

func NewRitualRepository() *RitualRepository {
	return &RitualRepository{}
}

func (r *RitualRepository) filter(keep func(*entity.Ritual) bool) []entity.Ritual {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Ritual, 0)
	for i := range r.rituals {
		if keep(&r.rituals[i]) {
			out = append(out, r.rituals[i])
		}
	}
	return out
}

func (r *RitualRepository) FindByYearMonth(_ context.Context, year, month int) ([]entity.Ritual, error) {
	return r.filter(func(x *entity.Ritual) bool {
		return x.Year == year && x.Month == month
	}), nil
}

func (r *RitualRepository) FindByYearMonthDay(_ context.Context, year, month, day int) ([]entity.Ritual, error) {
	return r.filter(func(x *entity.Ritual) bool {
		return x.Year == year && x.Month == month && x.Day == day
	}), nil
}

func (r *RitualRepository) indexOf(id string) int {
	for i := range r.rituals {
		if r.rituals[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *RitualRepository) FindByID(_ context.Context, id string) (*entity.Ritual, error) {
	id, err := repository.CanonicalRitualID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	x := r.rituals[i]
	return &x, nil
}

func (r *RitualRepository) Create(_ context.Context, x *entity.Ritual) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	x.ID = repository.NewRitualID()
	r.rituals = append(r.rituals, *x)
	return nil
}

func (r *RitualRepository) UpdateContent(_ context.Context, id, content string) (bool, error) {
	id, err := repository.CanonicalRitualID(id)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.rituals[i].Content = content
	return true, nil
}

func (r *RitualRepository) Delete(_ context.Context, id string) (bool, error) {
	id, err := repository.CanonicalRitualID(id)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.rituals = append(r.rituals[:i], r.rituals[i+1:]...)
	return true, nil
}

// Len returns the number of stored rituals.
func (r *RitualRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rituals)
}

var _ repository.RitualRepository = (*RitualRepository)(nil)
