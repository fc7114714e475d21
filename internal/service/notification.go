package service

import (
	"context"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize
	notes, total, err := s.noteRepo.List(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, domain.Remote("noteRepo.List", err)
	}
	return notes, total, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	return domain.Remote("noteRepo.MarkAsRead", s.noteRepo.MarkAsRead(ctx, notificationID, userID))
}
