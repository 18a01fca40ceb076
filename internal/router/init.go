package router

import (
	"github.com/dreyes/auth-service/config"
	userapp "github.com/dreyes/auth-service/internal/application"
	"github.com/dreyes/auth-service/internal/container"
	repouser "github.com/dreyes/auth-service/internal/domain/repository"
	pginfra "github.com/dreyes/auth-service/internal/infrastructure/postgres"
	"github.com/dreyes/auth-service/internal/infrastructure/rediscache"
	handlers "github.com/dreyes/auth-service/internal/interface/http"
	usermodule "github.com/dreyes/auth-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()

	var repo repouser.UserRepository = pginfra.NewUserRepository(container.GetPGPool())
	if cfg.RedisCacheEnabled && container.GetRedis() != nil {
		repo = rediscache.New(repo, container.GetRedis(), cfg.UserCacheTTL, container.GetLogger())
	}

	service := userapp.NewService(
		repo,
		container.GetTokens(),
		container.GetCipher(),
		container.GetLogger(),
	)
	service.Pub = container.GetRabbitPub()
	service.ES = container.GetES()
	service.ESUsersIndex = cfg.ESUsersIndex
	service.MailEnabled = cfg.MailSendEnabled

	var auth userapp.Authenticator
	if cfg.LoginMode == config.LoginModeCredentials {
		auth = &userapp.CredentialsAuthenticator{Svc: service}
	} else {
		auth = &userapp.TokenAuthenticator{Svc: service}
	}

	handler := handlers.NewUserHandler(service, auth, cfg.LoginMode, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(usermodule.New(userDeps.Handler))
}
