package router

import (
	"github.com/yourplaces/api/internal/application"
	"github.com/yourplaces/api/internal/container"
	pginfra "github.com/yourplaces/api/internal/infrastructure/postgres"
	handlers "github.com/yourplaces/api/internal/interface/http"
	"github.com/yourplaces/api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	placeRepo := pginfra.NewPlaceRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetImageStore(),
		container.GetLogger(),
	)
	placeSvc := application.NewPlaceService(
		placeRepo,
		userRepo,
		container.GetGeocoder(),
		container.GetImageStore(),
		container.GetLogger(),
	)

	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())
	placeHandler := handlers.NewPlaceHandler(placeSvc, container.GetLogger())

	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewPlaceModule(placeHandler, container.GetJWT()))
}
