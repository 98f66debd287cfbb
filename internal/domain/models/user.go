// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// User account statuses. Blocked users cannot create donation requests or sign in.
const (
	UserActive  = "active"
	UserBlocked = "blocked"
)

// Roles lists every valid user role in display order.
var Roles = []string{RoleDonor, RoleVolunteer, RoleAdmin}

// UserStatuses lists every valid user status.
var UserStatuses = []string{UserActive, UserBlocked}

// BloodGroups lists the ABO/Rh groups accepted on users and donation requests.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// User is a registered donor, volunteer, or admin.
//
// Email is the natural key (stored lowercased and unique). The password is
// kept only as a bcrypt hash and never leaves the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	BloodGroup   string             `bson:"bloodGroup" json:"bloodGroup"`
	District     string             `bson:"district" json:"district"`
	Upazila      string             `bson:"upazila" json:"upazila"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`     // donor | volunteer | admin
	Status       string             `bson:"status" json:"status"` // active | blocked

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsBlocked reports whether the account has been blocked by an admin.
func (u User) IsBlocked() bool { return u.Status == UserBlocked }

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool { return contains(Roles, role) }

// IsValidUserStatus reports whether status is one of UserStatuses.
func IsValidUserStatus(status string) bool { return contains(UserStatuses, status) }

// IsValidBloodGroup reports whether g is one of BloodGroups.
func IsValidBloodGroup(g string) bool { return contains(BloodGroups, g) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
