package models

import "time"

// Profile holds the persisted, monotonically growing part of a user's
// standing: points only increase and badges are only added. Activity
// counters (posts published, likes received, comments made) are derived
// from the posts/likes/comments tables on demand and never stored here.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"` // Firebase UID
	Points    int       `json:"points" gorm:"not null;default:0"`
	Badges    []string  `json:"badges" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasBadge reports whether the profile already carries the given badge.
func (p *Profile) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
