package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	authController "kompetensi_backend/internals/features/users/auth/controller"
	authRoute "kompetensi_backend/internals/features/users/auth/route"
	authService "kompetensi_backend/internals/features/users/auth/service"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/logger"
	authMiddleware "kompetensi_backend/internals/middlewares/auth"
)

// AuthRoutes memasang /auth/* dan mengembalikan service-nya untuk AuthMiddleware.
func AuthRoutes(api fiber.Router, db *gorm.DB, cfg configs.AppConfig, log *logger.Logger) *authService.Service {
	svc := authService.New(db, helperAuth.TokenConfig{
		Secret:   cfg.JWT.Secret,
		TTL:      cfg.JWT.TTL,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	}, log)

	ctl := authController.NewAuthController(svc, cfg.CookieSecure)
	authRoute.AuthRoutes(api, ctl, authMiddleware.AuthMiddleware(svc, log))
	return svc
}
