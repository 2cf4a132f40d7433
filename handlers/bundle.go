package handlers

import (
	providerRepo "mindwell/database/repository/provider"
	userRepo "mindwell/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and repositories the route registrar
// needs in one place.
type HandlerBundle struct {
	// Repositories, needed by the auth middlewares.
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository

	// User endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetUserByIDHandler      gin.HandlerFunc

	// Provider endpoints.
	ProviderHandler *ProviderHandler

	// Booking endpoints.
	BookingHandler *BookingHandler

	// Notification endpoints.
	NotificationHandler *NotificationHandler
}
