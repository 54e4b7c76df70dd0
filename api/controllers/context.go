package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/api/middleware"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

// requireUser extracts the authenticated user id or fails with 401.
func requireUser(r *http.Request) (uuid.UUID, error) {
	userID := middleware.UserUUIDFromContext(r.Context())
	if userID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, nil
}
