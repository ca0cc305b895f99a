package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecipeSource records where a persisted recipe came from.
type RecipeSource string

const (
	// SourceUserSubmitted marks recipes created through the API.
	SourceUserSubmitted RecipeSource = "user_submitted"
	// SourceImportedOnline marks recipes loaded by the bulk importer.
	SourceImportedOnline RecipeSource = "imported_online"
)

// StringArray is a custom type for handling string arrays in JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a locally persisted recipe. SearchableText is derived from the
// other fields at write time and is never set independently; rows are
// immutable once created, except for bulk-import replacement keyed on
// Source + ExternalURL.
type Recipe struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Title          string       `gorm:"size:255;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Ingredients    StringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions   string       `gorm:"type:text;not null" json:"instructions"`
	ImageURL       string       `gorm:"size:512" json:"image_url"`
	Source         RecipeSource `gorm:"size:32;not null;default:'user_submitted'" json:"source"`
	ExternalURL    string       `gorm:"size:512" json:"external_url"`
	SearchableText string       `gorm:"type:text;not null;index" json:"-"`
}
