package pathid_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectID(t *testing.T) {
	valid := primitive.NewObjectID()

	tests := []struct {
		name    string
		value   string
		want    primitive.ObjectID
		wantErr bool
	}{
		{"valid", valid.Hex(), valid, false},
		{"surrounding space", " " + valid.Hex() + " ", valid, false},
		{"too short", "abc", primitive.NilObjectID, true},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", primitive.NilObjectID, true},
		{"empty", "", primitive.NilObjectID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testutil.WithChiURLParam(httptest.NewRequest("GET", "/", nil), "id", tt.value)
			got, err := pathid.ObjectID(r, "id")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if e := apperr.As(err); e.Code != apperr.CodeInvalidID {
					t.Errorf("code = %q, want invalid_id", e.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got.Hex(), tt.want.Hex())
			}
		})
	}
}
