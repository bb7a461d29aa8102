package models

import "time"

// OAuthState is the short-lived correlation token persisted across the
// federated-login redirect round trip.
type OAuthState struct {
	State   string
	Expires time.Time
}
