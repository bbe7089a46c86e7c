package handler

import "kejani-backend/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Property     *PropertyHandler
	Verification *VerificationHandler
	Media        *MediaHandler
	Notification *NotificationHandler
	Application  *ApplicationHandler
	Intake       *IntakeHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Property:     NewPropertyHandler(services.Property),
		Verification: NewVerificationHandler(services.Property),
		Media:        NewMediaHandler(services.Media),
		Notification: NewNotificationHandler(services.Notification),
		Application:  NewApplicationHandler(services.Application),
		Intake:       NewIntakeHandler(services.Intake),
	}
}
