package handler

import "feedback-backend/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Feedback     *FeedbackHandler
	Notification *NotificationHandler
	Report       *ReportHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Feedback:     NewFeedbackHandler(services.Feedback),
		Notification: NewNotificationHandler(services.Notification),
		Report:       NewReportHandler(services.Report),
	}
}
