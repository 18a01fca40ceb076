package application

import (
	"context"
	"errors"

	repo "github.com/dreyes/auth-service/internal/domain/repository"
)

// Credentials carries whichever proof of identity the wired login variant
// consumes: a bearer token, or an email/password pair.
type Credentials struct {
	Token    string
	Email    string
	Password string
}

// Authenticator is the login capability. Two variants exist: by-token
// (primary, does not reissue the token) and by-email/password (reissues).
// The HTTP boundary chooses which one is wired.
type Authenticator interface {
	Login(ctx context.Context, cred Credentials) (*UserResult, error)
}

// TokenAuthenticator resolves the bearer token back to the account it was
// issued for.
type TokenAuthenticator struct {
	Svc *Service
}

// Login verifies the token, bumps last-login and returns the full
// projection. The stored token is left as issued at sign-up.
func (a *TokenAuthenticator) Login(ctx context.Context, cred Credentials) (*UserResult, error) {
	s := a.Svc
	email, err := s.Tokens.VerifyAndExtractSubject(cred.Token)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.LastLogin = s.now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return s.userResult(u)
}

// CredentialsAuthenticator re-authenticates with the email/password pair
// and rotates the stored token.
type CredentialsAuthenticator struct {
	Svc *Service
}

func (a *CredentialsAuthenticator) Login(ctx context.Context, cred Credentials) (*UserResult, error) {
	s := a.Svc
	u, err := s.Repo.GetByEmail(ctx, cred.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Same error as a bad password; don't leak which emails exist.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	stored, err := s.Cipher.Decrypt(u.Password)
	if err != nil {
		return nil, err
	}
	if stored != cred.Password {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.Tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}
	u.Token = tok
	u.LastLogin = s.now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return s.userResult(u)
}

var (
	_ Authenticator = (*TokenAuthenticator)(nil)
	_ Authenticator = (*CredentialsAuthenticator)(nil)
)
