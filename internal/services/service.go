package services

import (
	"masshouse/config"
	"masshouse/internal/database"
)

type Service struct {
	Auth         *AuthService
	Transaction  *TransactionService
	Reference    *ReferenceService
	Notification *NotificationService
	Scheduler    *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	authService, err := NewAuthService(config)
	if err != nil {
		return Service{}, err
	}

	return Service{
		Auth:         authService,
		Transaction:  NewTransactionService(db),
		Reference:    NewReferenceService(),
		Notification: NewNotificationService(config),
		Scheduler:    NewSchedulerService(),
	}, nil
}
