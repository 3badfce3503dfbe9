// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// Role is the study role of an authenticated user.
type Role string

const (
	Administrator Role = "Administrator"
	Nurse         Role = "Nurse"
	Supervisor    Role = "Supervisor"
	Participant   Role = "Participant"
)

// CanSync reports whether the role owns local study data. Only participants
// collect data on the device.
func (r Role) CanSync() bool {
	return r == Participant
}

// UserClaims is the claim set carried by the bearer token issued by the
// study server. The "sub" claim holds the user id.
type UserClaims struct {
	jwt.RegisteredClaims

	Role Role `json:"role"`
}

// Session is the authenticated identity the client works on behalf of.
type Session struct {
	UserID string
	Role   Role
	Token  string
}
