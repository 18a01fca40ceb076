package application

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/dreyes/auth-service/internal/domain/entity"
	repo "github.com/dreyes/auth-service/internal/domain/repository"
	"github.com/dreyes/auth-service/pkg/cipher"
	"github.com/dreyes/auth-service/pkg/helpers"
	"github.com/dreyes/auth-service/pkg/mailer"
	"github.com/dreyes/auth-service/pkg/policy"
	"github.com/dreyes/auth-service/pkg/token"
)

var (
	ErrUserAlreadyExists  = errors.New("a user is already registered with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service orchestrates sign-up and login. It is stateless across
// requests; all durable state lives in the repository.
type Service struct {
	Repo         repo.UserRepository
	Tokens       *token.Service
	Cipher       cipher.Cipher
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	MailEnabled  bool

	// now is swappable in tests
	now func() time.Time
}

func NewService(r repo.UserRepository, tokens *token.Service, c cipher.Cipher, logger *logrus.Logger) *Service {
	return &Service{
		Repo:   r,
		Tokens: tokens,
		Cipher: c,
		Logger: logger,
		now:    time.Now,
	}
}

type PhoneInput struct {
	Number      int64  `json:"number" binding:"required"`
	CityCode    int    `json:"citycode" binding:"required"`
	CountryCode string `json:"countrycode" binding:"required"`
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phones   []PhoneInput
}

// SignUpResult is the sign-up projection; password and phones are
// intentionally excluded.
type SignUpResult struct {
	ID        string    `json:"id"`
	Created   time.Time `json:"created"`
	LastLogin time.Time `json:"lastLogin"`
	IsActive  bool      `json:"isActive"`
	Token     string    `json:"token"`
}

type PhoneResult struct {
	Number      int64  `json:"number"`
	CityCode    int    `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

// UserResult is the full login projection, password decrypted.
type UserResult struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Password  string        `json:"password"`
	Phones    []PhoneResult `json:"phones"`
	Created   time.Time     `json:"created"`
	LastLogin time.Time     `json:"lastLogin"`
	Token     string        `json:"token"`
	IsActive  bool          `json:"isActive"`
}

// SignUp validates the credentials, persists a new active user with an
// encrypted password and a freshly issued token, and returns the sign-up
// projection. A duplicate email fails with ErrUserAlreadyExists whether
// caught by the existence check or by the store's unique constraint.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	if err := policy.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := policy.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	exists, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	encrypted, err := s.Cipher.Encrypt(in.Password)
	if err != nil {
		return nil, err
	}

	tok, err := s.Tokens.Issue(in.Email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  encrypted,
		Phones:    phonesFromInput(in.Phones),
		Created:   now,
		LastLogin: now,
		Token:     tok,
		IsActive:  true,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			// Lost the check-then-insert race to a concurrent sign-up.
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.enqueueWelcomeMail(ctx, u)
	s.indexUser(ctx, u)

	return &SignUpResult{
		ID:        u.ID,
		Created:   u.Created,
		LastLogin: u.LastLogin,
		IsActive:  u.IsActive,
		Token:     u.Token,
	}, nil
}

func (s *Service) userResult(u *entity.User) (*UserResult, error) {
	plain, err := s.Cipher.Decrypt(u.Password)
	if err != nil {
		return nil, err
	}
	phones := make([]PhoneResult, 0, len(u.Phones))
	for _, p := range u.Phones {
		phones = append(phones, PhoneResult{Number: p.Number, CityCode: p.CityCode, CountryCode: p.CountryCode})
	}
	return &UserResult{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  plain,
		Phones:    phones,
		Created:   u.Created,
		LastLogin: u.LastLogin,
		Token:     u.Token,
		IsActive:  u.IsActive,
	}, nil
}

func phonesFromInput(in []PhoneInput) []entity.Phone {
	phones := make([]entity.Phone, 0, len(in))
	for _, p := range in {
		phones = append(phones, entity.Phone{Number: p.Number, CityCode: p.CityCode, CountryCode: p.CountryCode})
	}
	return phones
}

// enqueueWelcomeMail puts a welcome job on the email queue. Best effort:
// a broker failure never fails the sign-up.
func (s *Service) enqueueWelcomeMail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome mail enqueue failed")
	}
}
