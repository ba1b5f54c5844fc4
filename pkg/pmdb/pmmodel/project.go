package pmmodel

import "time"

// Project membership is a snapshot: when a project is created under a team
// the member set is seeded from the team's current members and is not kept
// in sync with later team changes.
type Project struct {
	ID          int       `json:"id"`
	UUID        string    `json:"uuid"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeamID      *int      `json:"team_id"`
	OwnerID     int       `json:"owner_id"`
	Owner       *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Members     []User    `json:"members" gorm:"many2many:project2member;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the user is in the project's member set.
func (p *Project) HasMember(userID int) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
