package domain

import "time"

// TokenPair is what a successful login returns: the short-lived access
// credential presented on every request, and the longer-lived refresh
// credential presented only to the renewal endpoint.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models the persisted refresh credential record. The signed
// credential string itself is the primary key; its uniqueness follows from
// the timestamp entropy in the signature. A user may hold several live
// records at once from repeated logins.
type RefreshToken struct {
	Token      string
	Username   string
	ExpiryDate time.Time
	CreatedAt  time.Time
}

// Expired reports whether the record's expiry has passed at the given
// instant. Pure comparison, no side effects.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiryDate.Before(now)
}
