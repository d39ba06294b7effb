package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rituday/internal/domain/entity"
	repo "github.com/oksasatya/rituday/internal/domain/repository"
	"github.com/oksasatya/rituday/pkg/helpers"
	"github.com/oksasatya/rituday/pkg/mailer"
	tpl "github.com/oksasatya/rituday/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountExists      = errors.New("account id or email already registered")
)

// Notifier enqueues notification jobs. *helpers.RabbitPublisher satisfies it.
type Notifier interface {
	PublishJSON(ctx context.Context, body any) error
}

// RequestMeta describes the client of a request for notification emails.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AccountService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Passwords helpers.PasswordHasher
	Logger   *logrus.Logger
	Notifier Notifier // nil disables notifications
	AppName  string
	Now      func() time.Time
}

func NewAccountService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, notifier Notifier, appName string) *AccountService {
	return &AccountService{
		Repo:     users,
		JWT:      jwt,
		Logger:   logger,
		Notifier: notifier,
		AppName:  appName,
		Now:      time.Now,
	}
}

// Login checks id/password and returns a signed session token.
func (s *AccountService) Login(ctx context.Context, id, password string) (string, error) {
	u, err := s.Repo.FindOne(ctx, repo.UserFilter{ID: id})
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !s.Passwords.Compare(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	if s.Passwords.NeedsRehash(u.Password) {
		s.rehash(ctx, id, password)
	}
	token, err := s.JWT.Issue(u.Email, u.Name)
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"account_id": id})
		return "", err
	}
	counters.Add("logins", 1)
	return token, nil
}

// rehash stores password again at the configured cost. Failures only log; the login stands.
func (s *AccountService) rehash(ctx context.Context, id, password string) {
	hash, err := s.Passwords.Hash(password)
	if err == nil {
		_, err = s.Repo.UpdateOne(ctx, repo.UserFilter{ID: id}, repo.UserUpdate{Password: &hash})
	}
	if err != nil {
		helpers.LogError(s.Logger, "password rehash failed", err, logrus.Fields{"account_id": id})
	}
}

// CheckToken verifies a session token and returns its claims.
func (s *AccountService) CheckToken(token string) (*helpers.Claims, error) {
	return s.JWT.Parse(token)
}

// IDTaken reports whether an account already uses id.
func (s *AccountService) IDTaken(ctx context.Context, id string) (bool, error) {
	n, err := s.Repo.Count(ctx, repo.UserFilter{ID: id})
	return n > 0, err
}

// EmailTaken reports whether an account already uses email.
func (s *AccountService) EmailTaken(ctx context.Context, email string) (bool, error) {
	n, err := s.Repo.Count(ctx, repo.UserFilter{Email: email})
	return n > 0, err
}

func (s *AccountService) CreateAccount(ctx context.Context, id, password, name, email string) error {
	hash, err := s.Passwords.Hash(password)
	if err != nil {
		return err
	}
	err = s.Repo.Create(ctx, &entity.User{ID: id, Password: hash, Name: name, Email: email})
	if errors.Is(err, repo.ErrDuplicate) {
		return ErrAccountExists
	}
	if err != nil {
		return err
	}
	counters.Add("signups", 1)
	return nil
}

// FindID returns the login id of the account registered with name and email.
func (s *AccountService) FindID(ctx context.Context, name, email string) (string, error) {
	u, err := s.Repo.FindOne(ctx, repo.UserFilter{Name: name, Email: email})
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// FindPassword replaces the password of the account matching id and email
// with a fresh temporary one and returns it in plaintext.
func (s *AccountService) FindPassword(ctx context.Context, id, email string, meta RequestMeta) (string, error) {
	u, err := s.Repo.FindOne(ctx, repo.UserFilter{ID: id, Email: email})
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	temp, err := helpers.GenerateTemporaryPassword()
	if err != nil {
		return "", err
	}
	hash, err := s.Passwords.Hash(temp)
	if err != nil {
		return "", err
	}
	matched, err := s.Repo.UpdateOne(ctx, repo.UserFilter{ID: u.ID}, repo.UserUpdate{Password: &hash})
	if err != nil {
		return "", err
	}
	if !matched {
		// removed between the lookup and the update
		return "", ErrUserNotFound
	}
	counters.Add("password_resets", 1)
	s.notify(ctx, tpl.PasswordReset, u, meta)
	return temp, nil
}

// ChangePassword sets the password of the account with id. An unknown id
// is not an error and nothing is inserted.
func (s *AccountService) ChangePassword(ctx context.Context, id, password string, meta RequestMeta) error {
	hash, err := s.Passwords.Hash(password)
	if err != nil {
		return err
	}
	matched, err := s.Repo.UpdateOne(ctx, repo.UserFilter{ID: id}, repo.UserUpdate{Password: &hash})
	if err != nil {
		return err
	}
	if !matched {
		if s.Logger != nil {
			s.Logger.WithField("account_id", id).Debug("change password for unknown account")
		}
		return nil
	}
	if s.Notifier != nil {
		u, err := s.Repo.FindOne(ctx, repo.UserFilter{ID: id})
		if err == nil {
			s.notify(ctx, tpl.PasswordChanged, u, meta)
		}
	}
	return nil
}

// notify enqueues an account email. Failures are logged and never surface to the caller.
func (s *AccountService) notify(ctx context.Context, template string, u *entity.User, meta RequestMeta) {
	if s.Notifier == nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: template,
		Data: tpl.NewAccountData(s.AppName, u.Name, u.Email, u.ID,
			tpl.WithIP(meta.IP),
			tpl.WithUserAgent(meta.UserAgent),
			tpl.WithTime(s.Now()),
		),
	}
	if err := s.Notifier.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "enqueue email failed", err, logrus.Fields{"template": template, "account_id": u.ID})
		return
	}
	counters.Add("emails_enqueued", 1)
}
