package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"translation-bot/internal/domain"
	"translation-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure SessionRepository implements the output port
var _ output.SessionStore = (*SessionRepository)(nil)

// SessionRepository struct - Secondary/Driven adapter persisting chat
// sessions in PostgreSQL. Carries the same semantics as the in-memory
// store: expired rows are discarded and replaced with fresh defaults.
type SessionRepository struct {
	dbGorm *gorm.DB
	expiry time.Duration
}

// NewSessionRepository func - Creates new PostgreSQL session repository
func NewSessionRepository(dbGorm *gorm.DB, expiry time.Duration) *SessionRepository {
	logrus.Info("Migrate database ...")
	domain.MigrateDatabase(dbGorm)
	if expiry <= 0 {
		expiry = domain.DefaultSessionExpiry
	}
	return &SessionRepository{
		dbGorm: dbGorm,
		expiry: expiry,
	}
}

// Get retrieves the session for a chat; missing or expired rows yield a
// fresh default session. Expired rows are deleted on the way.
func (p *SessionRepository) Get(chatID string) (*domain.ChatSession, error) {
	var record domain.SessionRecord
	err := p.dbGorm.Where("chat_id = ?", chatID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewChatSession(chatID), nil
		}
		logrus.Errorln(err)
		return nil, err
	}

	if time.Since(record.LastActive) > p.expiry {
		if err := p.dbGorm.Delete(&record).Error; err != nil {
			logrus.Errorln(err)
		}
		return domain.NewChatSession(chatID), nil
	}

	session, err := p.toSession(&record)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	session.Touch()
	return session, nil
}

// Set persists the session for its chat, stamping LastActive
func (p *SessionRepository) Set(session *domain.ChatSession) error {
	session.Touch()

	languages, err := json.Marshal(session.SelectedLanguages)
	if err != nil {
		return err
	}
	emojis, err := json.Marshal(session.UserEmojis)
	if err != nil {
		return err
	}

	columns := map[string]interface{}{
		"languages":     string(languages),
		"authenticated": session.Authenticated,
		"user_emojis":   string(emojis),
		"last_active":   session.LastActive,
	}

	var existing domain.SessionRecord
	err = p.dbGorm.Where("chat_id = ?", session.ChatID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Errorln(err)
			return err
		}
		record := domain.SessionRecord{
			ChatID:        session.ChatID,
			Languages:     string(languages),
			Authenticated: session.Authenticated,
			UserEmojis:    string(emojis),
			LastActive:    session.LastActive,
		}
		if err := p.dbGorm.Create(&record).Error; err != nil {
			logrus.Errorln(err)
			return err
		}
		return nil
	}

	if err := p.dbGorm.Model(&existing).Updates(columns).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// Clear removes the session for a chat. Idempotent.
func (p *SessionRepository) Clear(chatID string) error {
	err := p.dbGorm.Where("chat_id = ?", chatID).Delete(&domain.SessionRecord{}).Error
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// Authenticate marks the chat's session authenticated and persists it
func (p *SessionRepository) Authenticate(chatID string) error {
	session, err := p.Get(chatID)
	if err != nil {
		return err
	}
	session.Authenticated = true
	return p.Set(session)
}

// ActiveCount prunes expired rows and reports how many remain
func (p *SessionRepository) ActiveCount() (int, error) {
	cutoff := time.Now().Add(-p.expiry)

	if err := p.dbGorm.Where("last_active < ?", cutoff).Delete(&domain.SessionRecord{}).Error; err != nil {
		logrus.Errorln(err)
		return 0, err
	}

	var count int64
	if err := p.dbGorm.Model(&domain.SessionRecord{}).Count(&count).Error; err != nil {
		logrus.Errorln(err)
		return 0, err
	}
	return int(count), nil
}

// toSession converts a stored record back into the domain entity
func (p *SessionRepository) toSession(record *domain.SessionRecord) (*domain.ChatSession, error) {
	session := domain.NewChatSession(record.ChatID)
	session.Authenticated = record.Authenticated
	session.LastActive = record.LastActive

	if record.Languages != "" {
		if err := json.Unmarshal([]byte(record.Languages), &session.SelectedLanguages); err != nil {
			return nil, err
		}
	}
	if record.UserEmojis != "" {
		if err := json.Unmarshal([]byte(record.UserEmojis), &session.UserEmojis); err != nil {
			return nil, err
		}
	}
	return session, nil
}
