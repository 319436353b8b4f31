package model

import "time"

// SenderRole identifies which side of the contract wrote a chat message.
type SenderRole string

const (
	SenderTrucker SenderRole = "trucker"
	SenderFactory SenderRole = "factory"
	SenderSystem  SenderRole = "system"
)

// ChatMessage is one entry in a booking's chat history.
type ChatMessage struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"-"`
	BookingID string     `gorm:"index;size:36;not null" json:"-"`
	Sender    SenderRole `gorm:"size:16;not null" json:"sender"`
	Text      string     `gorm:"not null" json:"text"`
	Timestamp time.Time  `gorm:"not null" json:"timestamp"`
}
