package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (m *Team) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}

type TeamMember struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role   string    `gorm:"type:text;not null;default:member"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
