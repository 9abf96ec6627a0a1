package message

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chat-gateway/internal/domain/chat"
	"chat-gateway/internal/infrastructure/database/entities"
	"chat-gateway/internal/infrastructure/metrics"
	"chat-gateway/internal/utils/apperrors"
)

// Repository persists chat messages in sqlite.
type Repository struct {
	db *gorm.DB
}

// New constructs the message repository.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a single message. The row is written in one statement, so a
// reader never observes a message without its id, text, or timestamp.
func (r *Repository) Append(ctx context.Context, role chat.Role, text string) (*chat.Message, error) {
	entity := entities.Message{
		Role:      string(role),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "storage_unavailable", "failed to append message")
	}

	metrics.RecordMessageStored(string(role))
	return toDomain(entity), nil
}

// List returns up to limit messages in ascending id order.
func (r *Repository) List(ctx context.Context, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = chat.DefaultListLimit
	}

	var rows []entities.Message
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "storage_unavailable", "failed to list messages")
	}

	messages := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, *toDomain(row))
	}
	return messages, nil
}

func toDomain(entity entities.Message) *chat.Message {
	return &chat.Message{
		ID:        entity.ID,
		Role:      chat.Role(entity.Role),
		Text:      entity.Text,
		CreatedAt: entity.CreatedAt,
	}
}

var _ chat.Repository = (*Repository)(nil)
