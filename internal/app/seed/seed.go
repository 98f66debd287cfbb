// internal/app/seed/seed.go
package seed

import (
	"context"
	"errors"
	"fmt"

	blogstore "github.com/dalemusser/bloodhub/internal/app/store/blogs"
	donationrequeststore "github.com/dalemusser/bloodhub/internal/app/store/donationrequests"
	fundingstore "github.com/dalemusser/bloodhub/internal/app/store/fundings"
	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Summary counts what a Run inserted.
type Summary struct {
	Users    int
	Requests int
	Blogs    int
	Fundings int
}

func (s Summary) String() string {
	return fmt.Sprintf("users=%d requests=%d blogs=%d fundings=%d", s.Users, s.Requests, s.Blogs, s.Fundings)
}

var demoUsers = []models.User{
	{Email: "admin@bloodhub.test", Name: "Demo Admin", BloodGroup: "O+", District: "Dhaka", Upazila: "Dhanmondi", Role: models.RoleAdmin},
	{Email: "volunteer@bloodhub.test", Name: "Demo Volunteer", BloodGroup: "B+", District: "Chattogram", Upazila: "Pahartali", Role: models.RoleVolunteer},
	{Email: "donor@bloodhub.test", Name: "Demo Donor", BloodGroup: "A-", District: "Dhaka", Upazila: "Mirpur", Role: models.RoleDonor},
	{Email: "blocked@bloodhub.test", Name: "Blocked Donor", BloodGroup: "AB+", District: "Sylhet", Upazila: "Beanibazar", Role: models.RoleDonor, Status: models.UserBlocked},
}

var demoRequests = []models.DonationRequest{
	{RecipientName: "Karim", RecipientDistrict: "Dhaka", RecipientUpazila: "Mirpur", HospitalName: "Dhaka Medical College Hospital", FullAddress: "Secretariat Rd, Dhaka", BloodGroup: "A-", DonationDate: "2025-01-10", DonationTime: "10:00", RequestMessage: "Surgery scheduled"},
	{RecipientName: "Nusrat", RecipientDistrict: "Dhaka", RecipientUpazila: "Dhanmondi", HospitalName: "Square Hospital", FullAddress: "18/F Bir Uttam Qazi Nuruzzaman Sarak", BloodGroup: "O+", DonationDate: "2025-01-12", DonationTime: "14:30"},
	{RecipientName: "Rafiq", RecipientDistrict: "Chattogram", RecipientUpazila: "Pahartali", HospitalName: "Chattogram Medical College", FullAddress: "57 K.B. Fazlul Kader Rd", BloodGroup: "B+", DonationDate: "2025-01-15", DonationTime: "09:00", RequestMessage: "Thalassemia patient"},
	{RecipientName: "Sadia", RecipientDistrict: "Sylhet", RecipientUpazila: "Beanibazar", HospitalName: "Osmani Medical College", FullAddress: "Medical College Rd, Sylhet", BloodGroup: "AB+", DonationDate: "2025-01-20", DonationTime: "16:00"},
}

var demoBlogs = []models.Blog{
	{Title: "Why donate blood?", Content: "<p>One donation can help save up to <strong>three</strong> lives.</p>", CreatedBy: "admin@bloodhub.test"},
	{Title: "Preparing for your donation", Content: "<p>Eat well, drink water and bring an ID.</p>", CreatedBy: "volunteer@bloodhub.test"},
}

var demoFundings = []models.Funding{
	{Name: "Demo Donor", Email: "donor@bloodhub.test", Amount: 500},
	{Name: "Demo Volunteer", Email: "volunteer@bloodhub.test", Amount: 1250.5},
}

// Run inserts demo users (all with passwordHash), requests, blogs and
// fundings. Users that already exist are skipped. The remaining records are
// only inserted on the run that creates the demo donor, so Run can be
// repeated without duplicating them.
func Run(ctx context.Context, db *mongo.Database, passwordHash string, logger *zap.Logger) (Summary, error) {
	var sum Summary
	users := userstore.New(db)

	freshDonor := false
	for _, u := range demoUsers {
		u.PasswordHash = passwordHash
		if _, err := users.Create(ctx, u); err != nil {
			if errors.Is(err, userstore.ErrDuplicateEmail) {
				logger.Info("seed: user exists, skipping", zap.String("email", u.Email))
				continue
			}
			return sum, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		sum.Users++
		if u.Email == "donor@bloodhub.test" {
			freshDonor = true
		}
	}
	if !freshDonor {
		return sum, nil
	}

	requests := donationrequeststore.New(db)
	for i, dr := range demoRequests {
		dr.RequesterName, dr.RequesterEmail = "Demo Donor", "donor@bloodhub.test"
		created, err := requests.Create(ctx, dr)
		if err != nil {
			return sum, fmt.Errorf("seed donation request: %w", err)
		}
		sum.Requests++
		// Spread the demo requests across every status.
		if status := models.DonationStatuses[i%len(models.DonationStatuses)]; status != models.DonationPending {
			if err := requests.SetStatus(ctx, created.ID, status); err != nil {
				return sum, fmt.Errorf("seed donation status: %w", err)
			}
		}
	}

	blogs := blogstore.New(db)
	for i, b := range demoBlogs {
		created, err := blogs.Create(ctx, b)
		if err != nil {
			return sum, fmt.Errorf("seed blog: %w", err)
		}
		sum.Blogs++
		if i == 0 {
			if err := blogs.Transition(ctx, created.ID, models.BlogDraft, models.BlogPublished); err != nil {
				return sum, fmt.Errorf("seed blog publish: %w", err)
			}
		}
	}

	fundings := fundingstore.New(db)
	for _, f := range demoFundings {
		if _, err := fundings.Create(ctx, f); err != nil {
			return sum, fmt.Errorf("seed funding: %w", err)
		}
		sum.Fundings++
	}

	logger.Info("seed complete", zap.Stringer("summary", sum))
	return sum, nil
}
