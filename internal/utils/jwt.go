// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/study-companion/models"
)

var (
	// ErrInvalidToken is returned when the bearer token cannot be parsed or
	// carries no subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the "exp" claim is in the past.
	ErrTokenExpired = errors.New("token is expired")
)

// ParseSessionToken extracts the user id ("sub") and the study role
// ("role") from a bearer token issued by the study server.
//
// The signature is not verified: the device does not hold the signing key,
// and the server re-validates the token on every request. The expiration
// claim is still checked against now so that an expired token fails early.
//
// Example usage:
//
//	session, err := utils.ParseSessionToken(rawToken, time.Now())
//	if err != nil {
//	    // ask the user to sign in again
//	}
func ParseSessionToken(tokenString string, now time.Time) (models.Session, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))
	if tokenString == "" {
		return models.Session{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &models.UserClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(now) {
		return models.Session{}, ErrTokenExpired
	}

	userID, err := claims.GetSubject()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if userID == "" {
		return models.Session{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return models.Session{UserID: userID, Role: claims.Role, Token: tokenString}, nil
}
