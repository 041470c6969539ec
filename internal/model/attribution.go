package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// adminSentinel is the stored marker for actions performed by the
// env-configured admin, which has no user row.
const adminSentinel = "admin"

// Attribution records who performed an action: either a real user or the
// admin identity. The two cases are kept as a tagged variant so callers
// handle both explicitly instead of comparing raw strings.
type Attribution struct {
	admin  bool
	userID uuid.UUID
}

// AdminAttribution returns the admin variant.
func AdminAttribution() Attribution {
	return Attribution{admin: true}
}

// UserAttribution returns the variant referencing a user id.
func UserAttribution(id uuid.UUID) Attribution {
	return Attribution{userID: id}
}

// IsAdmin reports whether the action was performed by the admin identity.
func (a Attribution) IsAdmin() bool {
	return a.admin
}

// UserID returns the referenced user id. ok is false for the admin variant
// and the zero value.
func (a Attribution) UserID() (uuid.UUID, bool) {
	if a.admin || a.userID == uuid.Nil {
		return uuid.Nil, false
	}
	return a.userID, true
}

// IsZero reports whether no attribution has been recorded, e.g. a leave
// request that has not been reviewed yet.
func (a Attribution) IsZero() bool {
	return !a.admin && a.userID == uuid.Nil
}

func (a Attribution) String() string {
	if a.admin {
		return adminSentinel
	}
	if a.userID == uuid.Nil {
		return ""
	}
	return a.userID.String()
}

// Value implements driver.Valuer. The zero value stores as NULL.
func (a Attribution) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return a.String(), nil
}

// Scan implements sql.Scanner for the stored string form.
func (a *Attribution) Scan(src interface{}) error {
	if src == nil {
		*a = Attribution{}
		return nil
	}
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("attribution: unsupported scan type %T", src)
	}
	if raw == adminSentinel {
		*a = AdminAttribution()
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("attribution: %w", err)
	}
	*a = UserAttribution(id)
	return nil
}

// AttributionView is the display form of an attribution reference.
type AttributionView struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
}

// AdminAttributionView is the fixed display identity of the admin.
var AdminAttributionView = AttributionView{ID: adminSentinel, FullName: "Admin"}
