package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"kejani-backend/internal/config"
	"kejani-backend/internal/pkg/cache"
	"kejani-backend/internal/repository"
	"kejani-backend/internal/service/application"
	"kejani-backend/internal/service/auth"
	"kejani-backend/internal/service/email"
	"kejani-backend/internal/service/intake"
	"kejani-backend/internal/service/media"
	"kejani-backend/internal/service/notification"
	"kejani-backend/internal/service/property"
	syncsvc "kejani-backend/internal/service/sync"
)

type Services struct {
	Auth         auth.Service
	Property     property.Service
	Sync         syncsvc.Service
	Notification notification.Service
	Application  application.Service
	Intake       intake.Service
	Media        media.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, feed repository.PropertyFeed, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)

	propertyCache := cache.New(redisClient, cfg.CacheTTL)
	propertyService := property.NewService(repos.Property, repos.User, repos.AuditLog, feed, propertyCache, emailService)
	syncService := syncsvc.NewService(repos.Property, feed)

	notificationService := notification.NewService(
		repos.Property,
		repos.Application,
		repos.Maintenance,
		repos.Payment,
		repos.Report,
		cfg.NotificationRefreshInterval,
	)

	applicationService := application.NewService(repos.Application, emailService)
	intakeService := intake.NewService(repos.Maintenance, repos.Payment, repos.Report)
	mediaService := media.NewService(repos.Media, minioClient, cfg)

	propertyService.SetNotifier(notificationService)
	applicationService.SetNotifier(notificationService)
	intakeService.SetNotifier(notificationService)

	return &Services{
		Auth:         authService,
		Property:     propertyService,
		Sync:         syncService,
		Notification: notificationService,
		Application:  applicationService,
		Intake:       intakeService,
		Media:        mediaService,
		Email:        emailService,
	}
}
