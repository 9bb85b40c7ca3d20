package log

import (
	"time"
)

// Log is one API request/response pair, written by the async request logger.
// Credentials are redacted from RequestHeaders before it is stored.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID       string    `gorm:"type:varchar(64);index" json:"request_id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int" json:"status_code"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
