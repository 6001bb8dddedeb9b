package middleware

import (
	"masshouse/config"
	"masshouse/internal/database"
	"masshouse/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB          database.DB
	Config      config.Config
	log         logger.Logger
	authService *services.AuthService
}

func New(
	db database.DB,
	authService *services.AuthService,
	config config.Config,
) Middleware {
	return Middleware{
		DB:          db,
		Config:      config,
		log:         logger.New("middleware"),
		authService: authService,
	}
}
