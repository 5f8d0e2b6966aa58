package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRecord struct - Persistence model for a chat session.
// Languages and emojis are stored as JSON text so the schema stays flat.
type SessionRecord struct {
	ID            *uuid.UUID `gorm:"type:uuid;primary_key;"`
	ChatID        string     `gorm:"type:varchar(64);uniqueIndex;not null;"`
	Languages     string     `gorm:"type:text"`
	Authenticated bool       `gorm:"not null;default:false"`
	UserEmojis    string     `gorm:"type:text"`
	LastActive    time.Time  `gorm:"type:timestamp;not null;index"`
	CreatedAt     *time.Time `gorm:"type:timestamp"`
	UpdatedAt     *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (s *SessionRecord) TableName() string {
	return "chat_sessions"
}

// BeforeCreate hook - generates UUID before creating
func (s *SessionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID != nil {
		return nil
	}
	uid, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	s.ID = &uid
	return nil
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	err := db.AutoMigrate(&SessionRecord{})
	if err != nil {
		panic(err)
	}
}
