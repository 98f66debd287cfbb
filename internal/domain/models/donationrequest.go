// internal/domain/models/donationrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation request statuses.
//
// Nothing in the API moves a request into inprogress except the permissive
// status update.
const (
	DonationPending    = "pending"
	DonationInProgress = "inprogress"
	DonationDone       = "done"
	DonationCanceled   = "canceled"
)

// DonationStatuses lists every valid donation request status.
var DonationStatuses = []string{DonationPending, DonationInProgress, DonationDone, DonationCanceled}

// DonationRequest is a recipient's need for blood, raised by a registered user.
//
// RequesterEmail refers to a User by email. The reference is checked only when
// the request is created.
type DonationRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequesterName     string             `bson:"requesterName" json:"requesterName"`
	RequesterEmail    string             `bson:"requesterEmail" json:"requesterEmail"`
	RecipientName     string             `bson:"recipientName" json:"recipientName"`
	RecipientDistrict string             `bson:"recipientDistrict" json:"recipientDistrict"`
	RecipientUpazila  string             `bson:"recipientUpazila" json:"recipientUpazila"`
	HospitalName      string             `bson:"hospitalName" json:"hospitalName"`
	FullAddress       string             `bson:"fullAddress" json:"fullAddress"`
	BloodGroup        string             `bson:"bloodGroup" json:"bloodGroup"`
	DonationDate      string             `bson:"donationDate" json:"donationDate"`
	DonationTime      string             `bson:"donationTime" json:"donationTime"`
	RequestMessage    string             `bson:"requestMessage,omitempty" json:"requestMessage,omitempty"`
	DonationStatus    string             `bson:"donationStatus" json:"donationStatus"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsValidDonationStatus reports whether status is one of DonationStatuses.
func IsValidDonationStatus(status string) bool { return contains(DonationStatuses, status) }
