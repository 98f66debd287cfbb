package donationpolicy

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingUpdater struct {
	setCalls        []string
	transitionCalls [][2]string
	err             error
}

func (r *recordingUpdater) SetStatus(_ context.Context, _ primitive.ObjectID, status string) error {
	r.setCalls = append(r.setCalls, status)
	return r.err
}

func (r *recordingUpdater) Transition(_ context.Context, _ primitive.ObjectID, from, to string) error {
	r.transitionCalls = append(r.transitionCalls, [2]string{from, to})
	return r.err
}

func TestAllows(t *testing.T) {
	permissive := StatusPolicy{}
	strict := StatusPolicy{Strict: true}

	tests := []struct {
		status     string
		permissive bool
		strict     bool
	}{
		{"pending", true, false},
		{"inprogress", true, false},
		{"done", true, true},
		{"canceled", true, true},
		{"archived", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := permissive.Allows(tt.status); got != tt.permissive {
			t.Errorf("permissive.Allows(%q) = %v, want %v", tt.status, got, tt.permissive)
		}
		if got := strict.Allows(tt.status); got != tt.strict {
			t.Errorf("strict.Allows(%q) = %v, want %v", tt.status, got, tt.strict)
		}
	}
}

func TestApply_PermissiveSetsUnconditionally(t *testing.T) {
	u := &recordingUpdater{}
	if err := (StatusPolicy{}).Apply(context.Background(), u, primitive.NewObjectID(), "pending"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(u.setCalls) != 1 || u.setCalls[0] != "pending" {
		t.Errorf("setCalls = %v, want [pending]", u.setCalls)
	}
	if len(u.transitionCalls) != 0 {
		t.Errorf("permissive policy must not use Transition, got %v", u.transitionCalls)
	}
}

func TestApply_StrictTransitionsFromInProgress(t *testing.T) {
	u := &recordingUpdater{}
	if err := (StatusPolicy{Strict: true}).Apply(context.Background(), u, primitive.NewObjectID(), "done"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(u.transitionCalls) != 1 || u.transitionCalls[0] != [2]string{models.DonationInProgress, "done"} {
		t.Errorf("transitionCalls = %v, want [[inprogress done]]", u.transitionCalls)
	}
	if len(u.setCalls) != 0 {
		t.Errorf("strict policy must not use SetStatus, got %v", u.setCalls)
	}
}

func TestApply_RejectsBeforeWriting(t *testing.T) {
	u := &recordingUpdater{}
	err := (StatusPolicy{Strict: true}).Apply(context.Background(), u, primitive.NewObjectID(), "pending")
	if !errors.Is(err, ErrStatusNotAllowed) {
		t.Fatalf("err = %v, want ErrStatusNotAllowed", err)
	}
	if len(u.setCalls)+len(u.transitionCalls) != 0 {
		t.Error("rejected status reached the store")
	}
}

func TestApply_PassesStoreErrorsThrough(t *testing.T) {
	sentinel := errors.New("conflict")
	u := &recordingUpdater{err: sentinel}
	err := (StatusPolicy{Strict: true}).Apply(context.Background(), u, primitive.NewObjectID(), "canceled")
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want the store error", err)
	}
}

func TestCanCreateRequest(t *testing.T) {
	if CanCreateRequest(nil) {
		t.Error("unknown requester allowed")
	}
	if CanCreateRequest(&models.User{Status: models.UserBlocked}) {
		t.Error("blocked requester allowed")
	}
	if !CanCreateRequest(&models.User{Status: models.UserActive, Role: models.RoleVolunteer}) {
		t.Error("active requester rejected")
	}
}

func TestCanViewRecent(t *testing.T) {
	if CanViewRecent(nil) {
		t.Error("unknown user allowed")
	}
	if CanViewRecent(&models.User{Role: models.RoleAdmin}) {
		t.Error("admin allowed")
	}
	if !CanViewRecent(&models.User{Role: models.RoleDonor}) {
		t.Error("donor rejected")
	}
}
