package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/services/anonymize"
	"github.com/arraypress/contentquery/internal/core/services/assets"
	auth2 "github.com/arraypress/contentquery/internal/core/services/auth"
	"github.com/arraypress/contentquery/internal/core/services/option"
	"github.com/arraypress/contentquery/internal/core/services/query"
	"github.com/arraypress/contentquery/internal/core/services/role"
	"github.com/arraypress/contentquery/internal/handlers"
	"github.com/arraypress/contentquery/internal/handlers/assetsapi"
	"github.com/arraypress/contentquery/internal/handlers/auth"
	"github.com/arraypress/contentquery/internal/handlers/options"
	"github.com/arraypress/contentquery/internal/handlers/privacy"
	"github.com/arraypress/contentquery/internal/handlers/queries"
	"github.com/arraypress/contentquery/internal/handlers/roles"
)

type ServiceProvider struct {
	queryService     query.IQueryService
	optionService    option.IOptionService
	assetService     assets.IAssetService
	anonymizeService anonymize.IAnonymizeService
	roleService      role.IRoleService

	localAuth auth2.IAuthService
}

func NewServiceProvider(
	queryService query.IQueryService,
	optionService option.IOptionService,
	assetService assets.IAssetService,
	anonymizeService anonymize.IAnonymizeService,
	roleService role.IRoleService,
	localAuth auth2.IAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		queryService:     queryService,
		optionService:    optionService,
		assetService:     assetService,
		anonymizeService: anonymizeService,
		roleService:      roleService,
		localAuth:        localAuth,
	}
}

type Server struct {
	router          *mux.Router
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	jwtCfg          *config.JwtConfig
	logger          primary.Logger

	srv *http.Server
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, jwtCfg *config.JwtConfig, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		jwtCfg:          jwtCfg,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	// mutating endpoints live behind the JWT middleware; option writes also
	// need the manage_options capability
	mp := handlers.New(s.jwtCfg)
	protected := r.NewRoute().Subrouter()
	protected.Use(mp.JWTMiddleware)
	admin := r.NewRoute().Subrouter()
	admin.Use(mp.JWTMiddleware, mp.CapabilityMiddleware("manage_options"))

	queries.
		NewQueryHandler(s.ServiceProvider.queryService, s.logger).
		RegisterRoutes(r, protected)
	options.
		NewOptionHandler(s.ServiceProvider.optionService, s.logger).
		RegisterRoutes(r, admin)
	assetsapi.
		NewAssetHandler(s.ServiceProvider.assetService, s.logger).
		RegisterRoutes(r, protected)
	privacy.
		NewAnonymizeHandler(s.ServiceProvider.anonymizeService, s.logger).
		RegisterRoutes(r)
	roles.
		NewRoleHandler(s.ServiceProvider.roleService, s.logger).
		RegisterRoutes(admin)
	auth.NewHandler().RegisterRoutes(r, &auth.ServiceDependencies{
		LocalAuthService: s.ServiceProvider.localAuth,
	})
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop() {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down http server", "error", err)
	}
}
