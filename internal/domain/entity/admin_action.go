package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AdminActionType enumerates the moderation actions an admin can take
type AdminActionType string

const (
	AdminActionApproveProfile AdminActionType = "approve_profile"
	AdminActionRejectProfile  AdminActionType = "reject_profile"
	AdminActionBanUser        AdminActionType = "ban_user"
	AdminActionResolveDispute AdminActionType = "resolve_dispute"
	AdminActionEditService    AdminActionType = "edit_service"
	AdminActionCancelBooking  AdminActionType = "cancel_booking"
	AdminActionDeleteBooking  AdminActionType = "delete_booking"
	AdminActionForceStatus    AdminActionType = "force_booking_status"
)

// AdminAction represents an audited moderation action taken by an admin
type AdminAction struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"admin_id"`
	ActionType AdminActionType `gorm:"type:varchar(50);not null;index" json:"action_type"`
	TargetID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"target_id"`
	Details    JSON            `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Admin User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (AdminAction) TableName() string {
	return "admin_actions"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
