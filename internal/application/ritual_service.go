package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rituday/internal/domain/entity"
	repo "github.com/oksasatya/rituday/internal/domain/repository"
)

var (
	ErrNoContent       = errors.New("ritual category and impression are required")
	ErrRitualNotFound  = errors.New("ritual not found")
	ErrInvalidRitualID = errors.New("invalid ritual id")
	ErrForbidden       = errors.New("ritual belongs to another user")
)

// RitualIndexer keeps a searchable copy of rituals. *search.RitualIndex satisfies it.
type RitualIndexer interface {
	Put(ctx context.Context, r *entity.Ritual) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Ritual, error)
}

type RitualService struct {
	Rituals repo.RitualRepository
	Users   repo.UserRepository
	Index   RitualIndexer // nil disables search
	Logger  *logrus.Logger
	Now     func() time.Time
}

func NewRitualService(rituals repo.RitualRepository, users repo.UserRepository, index RitualIndexer, logger *logrus.Logger) *RitualService {
	return &RitualService{
		Rituals: rituals,
		Users:   users,
		Index:   index,
		Logger:  logger,
		Now:     time.Now,
	}
}

func (s *RitualService) ListByMonth(ctx context.Context, year, month int) ([]entity.RitualView, error) {
	list, err := s.Rituals.FindByYearMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, list)
}

func (s *RitualService) ListByDay(ctx context.Context, year, month, day int) ([]entity.RitualView, error) {
	list, err := s.Rituals.FindByYearMonthDay(ctx, year, month, day)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, list)
}

// withNames joins each ritual with its owner's name, looking every owner up once.
// An owner that no longer exists leaves the name empty.
func (s *RitualService) withNames(ctx context.Context, list []entity.Ritual) ([]entity.RitualView, error) {
	names := make(map[string]string)
	out := make([]entity.RitualView, 0, len(list))
	for _, r := range list {
		name, ok := names[r.UserEmail]
		if !ok {
			u, err := s.Users.FindOne(ctx, repo.UserFilter{Email: r.UserEmail})
			switch {
			case err == nil:
				name = u.Name
			case errors.Is(err, repo.ErrNotFound):
				if s.Logger != nil {
					s.Logger.WithFields(logrus.Fields{"ritual_id": r.ID, "user_email": r.UserEmail}).Warn("ritual owner not found")
				}
			default:
				return nil, err
			}
			names[r.UserEmail] = name
		}
		out = append(out, entity.RitualView{Ritual: r, Name: name})
	}
	return out, nil
}

// Get returns the ritual with id, or nil when there is none.
func (s *RitualService) Get(ctx context.Context, id string) (*entity.Ritual, error) {
	r, err := s.Rituals.FindByID(ctx, id)
	switch {
	case errors.Is(err, repo.ErrInvalidID):
		return nil, ErrInvalidRitualID
	case errors.Is(err, repo.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return r, nil
}

// Enroll stores a ritual for ownerEmail dated with the current local day.
func (s *RitualService) Enroll(ctx context.Context, category, content, ownerEmail string) (*entity.Ritual, error) {
	if category == "" || content == "" {
		return nil, ErrNoContent
	}
	r := entity.NewRitual(category, content, ownerEmail, s.Now())
	if err := s.Rituals.Create(ctx, r); err != nil {
		return nil, err
	}
	counters.Add("rituals_enrolled", 1)
	s.syncIndex(ctx, r)
	return r, nil
}

func (s *RitualService) UpdateContent(ctx context.Context, id, content, callerEmail string) error {
	r, err := s.owned(ctx, id, callerEmail)
	if err != nil {
		return err
	}
	matched, err := s.Rituals.UpdateContent(ctx, r.ID, content)
	if err != nil {
		return err
	}
	if !matched {
		return ErrRitualNotFound
	}
	r.Content = content
	s.syncIndex(ctx, r)
	return nil
}

func (s *RitualService) Delete(ctx context.Context, id, callerEmail string) error {
	r, err := s.owned(ctx, id, callerEmail)
	if err != nil {
		return err
	}
	deleted, err := s.Rituals.Delete(ctx, r.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRitualNotFound
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, r.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("ritual_id", r.ID).Warn("es remove failed")
		}
	}
	return nil
}

// owned loads the ritual with id and checks that callerEmail owns it.
func (s *RitualService) owned(ctx context.Context, id, callerEmail string) (*entity.Ritual, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRitualNotFound
	}
	if !r.OwnedBy(callerEmail) {
		return nil, ErrForbidden
	}
	return r, nil
}

// Search runs a full-text query over category and content. Without a
// configured index it returns an empty list.
func (s *RitualService) Search(ctx context.Context, q string, size int) ([]entity.RitualView, error) {
	if s.Index == nil || q == "" {
		return []entity.RitualView{}, nil
	}
	hits, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, hits)
}

func (s *RitualService) syncIndex(ctx context.Context, r *entity.Ritual) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, r); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("ritual_id", r.ID).Warn("es index failed")
	}
}
