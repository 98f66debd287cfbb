// Package pathid parses ObjectID route parameters.
package pathid

import (
	"net/http"
	"strings"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID reads the chi URL parameter name as a hex ObjectID. A missing or
// malformed value yields apperr.InvalidID (400 invalid_id).
func ObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidID()
	}
	return oid, nil
}
