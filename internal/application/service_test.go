package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreyes/auth-service/internal/infrastructure/memory"
	"github.com/dreyes/auth-service/pkg/cipher"
	"github.com/dreyes/auth-service/pkg/policy"
	"github.com/dreyes/auth-service/pkg/token"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	aes, err := cipher.NewAES("test-passphrase")
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(memory.NewUserRepository(), token.NewService("secret", time.Hour), aes, logger)
}

func signUpInput() SignUpInput {
	return SignUpInput{
		Name:     "Juan Pérez",
		Email:    "juan@example.com",
		Password: "Password12",
		Phones: []PhoneInput{
			{Number: 87650009, CityCode: 7, CountryCode: "25"},
		},
	}
}

func TestSignUp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.IsActive)
	assert.Equal(t, res.Created, res.LastLogin)

	// The issued token must decode back to the owner's email.
	subject, err := svc.Tokens.VerifyAndExtractSubject(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", subject)

	// Stored password is cipher-text, not the plaintext.
	u, err := svc.Repo.GetByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Password12", u.Password)
	plain, err := svc.Cipher.Decrypt(u.Password)
	require.NoError(t, err)
	assert.Equal(t, "Password12", plain)
}

func TestSignUpRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	in := signUpInput()
	in.Email = "not-an-email"
	_, err := svc.SignUp(ctx, in)
	assert.ErrorIs(t, err, policy.ErrInvalidEmail)

	in = signUpInput()
	in.Email = ""
	_, err = svc.SignUp(ctx, in)
	assert.ErrorIs(t, err, policy.ErrEmailRequired)

	for _, pwd := range []string{"password12", "Password123", "Pass1"} {
		in = signUpInput()
		in.Password = pwd
		_, err = svc.SignUp(ctx, in)
		assert.ErrorIs(t, err, policy.ErrInvalidPassword, "password %q", pwd)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, signUpInput())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Existing record is untouched by the failed attempt.
	u, err := svc.Repo.GetByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, u.ID)
	assert.Equal(t, first.Token, u.Token)
	assert.Equal(t, first.LastLogin, u.LastLogin)
}

func TestTokenLogin(t *testing.T) {
	svc := newTestService(t)
	auth := &TokenAuthenticator{Svc: svc}
	ctx := context.Background()

	signedUp, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	// Login happens after sign-up; the clock must have moved on.
	later := signedUp.Created.Add(2 * time.Minute)
	svc.now = func() time.Time { return later }

	res, err := auth.Login(ctx, Credentials{Token: signedUp.Token})
	require.NoError(t, err)

	assert.Equal(t, signedUp.ID, res.ID)
	assert.Equal(t, "Juan Pérez", res.Name)
	assert.Equal(t, "juan@example.com", res.Email)
	assert.Equal(t, "Password12", res.Password)
	assert.True(t, res.IsActive)
	require.Len(t, res.Phones, 1)
	assert.Equal(t, int64(87650009), res.Phones[0].Number)

	// lastLogin moved forward, created did not, and the token was not
	// reissued.
	assert.Equal(t, signedUp.Created, res.Created)
	assert.Equal(t, later, res.LastLogin)
	assert.True(t, res.Created.Before(res.LastLogin))
	assert.Equal(t, signedUp.Token, res.Token)
}

func TestTokenLoginUnknownIdentity(t *testing.T) {
	svc := newTestService(t)
	auth := &TokenAuthenticator{Svc: svc}

	tok, err := svc.Tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), Credentials{Token: tok})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenLoginBadTokens(t *testing.T) {
	svc := newTestService(t)
	auth := &TokenAuthenticator{Svc: svc}
	ctx := context.Background()

	_, err := auth.Login(ctx, Credentials{Token: "garbage"})
	assert.ErrorIs(t, err, token.ErrMalformedToken)

	expired := token.NewService("secret", -time.Minute)
	tok, err := expired.Issue("juan@example.com")
	require.NoError(t, err)
	_, err = auth.Login(ctx, Credentials{Token: tok})
	assert.ErrorIs(t, err, token.ErrExpiredToken)

	foreign := token.NewService("other-secret", time.Hour)
	tok, err = foreign.Issue("juan@example.com")
	require.NoError(t, err)
	_, err = auth.Login(ctx, Credentials{Token: tok})
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestCredentialsLogin(t *testing.T) {
	svc := newTestService(t)
	auth := &CredentialsAuthenticator{Svc: svc}
	ctx := context.Background()

	signedUp, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	later := signedUp.Created.Add(2 * time.Minute)
	svc.now = func() time.Time { return later }

	res, err := auth.Login(ctx, Credentials{Email: "juan@example.com", Password: "Password12"})
	require.NoError(t, err)

	assert.Equal(t, later, res.LastLogin)
	assert.Equal(t, "Password12", res.Password)

	// This variant reissues: the stored token must verify for the owner.
	subject, err := svc.Tokens.VerifyAndExtractSubject(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", subject)
}

func TestCredentialsLoginRejections(t *testing.T) {
	svc := newTestService(t)
	auth := &CredentialsAuthenticator{Svc: svc}
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	_, err = auth.Login(ctx, Credentials{Email: "juan@example.com", Password: "Wrongpass12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, Credentials{Email: "ghost@example.com", Password: "Password12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
