package exchange

import "time"

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// Exchange is one served model call. Prompt and response text are not stored.
type Exchange struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"messageId"`
	ConversationID string    `gorm:"type:varchar(128);index" json:"conversationId,omitempty"`
	UserID         string    `gorm:"type:varchar(128);index" json:"userId,omitempty"`
	Endpoint       string    `gorm:"type:varchar(32);index;not null" json:"endpoint"`
	Mode           string    `gorm:"type:varchar(16);not null" json:"mode"`
	Provider       string    `gorm:"type:varchar(32);not null" json:"provider"`
	Outcome        Outcome   `gorm:"type:varchar(16);index;not null" json:"outcome"`
	HTTPStatus     int       `gorm:"not null" json:"httpStatus"`
	InputChars     int       `gorm:"not null" json:"inputChars"`
	OutputChars    int       `gorm:"not null" json:"outputChars"`
	Chunks         int       `gorm:"not null" json:"chunks"`
	DurationMs     int64     `gorm:"not null" json:"durationMs"`
	Error          *string   `gorm:"type:text" json:"error,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Exchange) TableName() string { return "exchanges" }
