package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"feedback-backend/internal/config"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service/auth"
	"feedback-backend/internal/service/email"
	"feedback-backend/internal/service/feedback"
	"feedback-backend/internal/service/notification"
	"feedback-backend/internal/service/report"
	"feedback-backend/internal/service/sms"
	"feedback-backend/internal/service/storage"
	"feedback-backend/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Feedback     feedback.Service
	Notification notification.Service
	Report       report.Service
	Email        email.Service
	SMS          sms.Service
	Storage      storage.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	emailService := email.NewService(cfg)
	smsService := sms.NewService(cfg)
	storageService := storage.NewService(minioClient, cfg)

	authService := auth.NewService(repos.User, repos.Session, emailService, cfg, logger)
	userService := user.NewService(repos.User, repos.Profile, storageService, logger)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.Profile, emailService, smsService, redisClient, logger)
	feedbackService := feedback.NewService(repos.Feedback, repos.Response, notificationService, storageService, logger)
	reportService := report.NewService(repos.Report, repos.Feedback)

	return &Services{
		Auth:         authService,
		User:         userService,
		Feedback:     feedbackService,
		Notification: notificationService,
		Report:       reportService,
		Email:        emailService,
		SMS:          smsService,
		Storage:      storageService,
	}
}
