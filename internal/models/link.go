package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Link хранит целевой URL и его UTM-метки. Владелец — либо пользователь,
// либо команда, но не оба сразу.
type Link struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID *uuid.UUID `gorm:"type:uuid;index"`
	TeamID *uuid.UUID `gorm:"type:uuid;index"`

	DestinationURL string  `gorm:"type:text;not null"`
	UTMSource      *string `gorm:"type:text"`
	UTMMedium      *string `gorm:"type:text"`
	UTMCampaign    *string `gorm:"type:text"`
	UTMTerm        *string `gorm:"type:text"`
	UTMContent     *string `gorm:"type:text"`

	ShortCode *string   `gorm:"type:text;uniqueIndex"`
	Title     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Clicks []Click `gorm:"foreignKey:LinkID"`
}

func (m *Link) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
