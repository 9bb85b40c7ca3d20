package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User mirrors an identity from the JWT issuer. Rows are created the first
// time a token subject is seen.
type User struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid        string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"uuid"`
	Username    string      `gorm:"type:varchar(255);not null;index" json:"username"`
	Email       *string     `gorm:"type:varchar(255)" json:"email"`
	FirstName   string      `gorm:"type:varchar(150)" json:"first_name"`
	LastName    string      `gorm:"type:varchar(150)" json:"last_name"`
	Permissions StringSlice `gorm:"type:json" json:"permissions"` // Use JSON column to store slice of strings

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Has reports whether the slice contains perm.
func (ss StringSlice) Has(perm string) bool {
	for _, p := range ss {
		if p == perm {
			return true
		}
	}
	return false
}
