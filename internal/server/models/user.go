// Package models declares the persistent entities of the task-tracking
// service as plain structs shared by repositories and services.
package models

import "time"

// User is the identity anchor. Email is stored lower-cased and uniquely
// identifies at most one user regardless of how the account was created.
// PasswordHash is empty for accounts created through federated login.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
