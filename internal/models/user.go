package models

import (
	"time"

	"github.com/google/uuid"
)

// User — минимальная проекция аккаунта из auth-сервиса: план нужен для
// проверки лимитов и доступа к персональной аналитике.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:text;unique;not null"`
	Plan      string    `gorm:"type:text;not null;default:free"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
