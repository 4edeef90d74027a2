// Package history keeps an in-memory journal of the turns and tool calls of
// the running process. Nothing is written to disk.
package history

import (
	"fmt"
	"slices"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Journal struct {
	db *gorm.DB
}

// TurnEntry is one user prompt and the reply it produced.
type TurnEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	SessionID    string `gorm:"index"`
	Prompt       string
	Response     string
	Failed       bool
	DurationMs   int64
	InputTokens  int
	OutputTokens int
	Iterations   int
}

// ToolCallEntry is one tool invocation made while answering a turn.
type ToolCallEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	TurnID     uint `gorm:"index"`
	Tool       string
	Arguments  string
	Result     string
	Failed     bool
	DurationMs int64
}

const memoryDSN = ":memory:"

func NewJournal() (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(memoryDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening journal: %w", err)
	}

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error opening journal: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&TurnEntry{}, &ToolCallEntry{}); err != nil {
		return nil, fmt.Errorf("error migrating journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// StartTurn records the beginning of a turn. The returned entry is completed
// with FinishTurn.
func (j *Journal) StartTurn(sessionID string, prompt string) (*TurnEntry, error) {
	entry := TurnEntry{
		SessionID: sessionID,
		Prompt:    prompt,
	}

	result := j.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// FinishTurn stores the outcome fields set on entry.
func (j *Journal) FinishTurn(entry *TurnEntry) error {
	return j.db.Save(entry).Error
}

func (j *Journal) RecordToolCall(entry *ToolCallEntry) error {
	return j.db.Create(entry).Error
}

// RecentTurns returns up to limit turns, oldest first. An empty sessionID
// matches every session.
func (j *Journal) RecentTurns(sessionID string, limit int) ([]TurnEntry, error) {
	var entries []TurnEntry
	db := j.db
	if sessionID != "" {
		db = db.Where("session_id = ?", sessionID)
	}
	result := db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}

// ToolCalls returns the tool calls of a turn in the order they ran.
func (j *Journal) ToolCalls(turnID uint) ([]ToolCallEntry, error) {
	var entries []ToolCallEntry
	result := j.db.Where("turn_id = ?", turnID).Order("id asc").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (j *Journal) TurnCount() (int64, error) {
	var count int64
	if err := j.db.Model(&TurnEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
