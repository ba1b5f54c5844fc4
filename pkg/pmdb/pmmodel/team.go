package pmmodel

import "time"

// TeamRole is the team-scoped permission tier for a member.
type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

func (r TeamRole) Valid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember:
		return true
	}
	return false
}

func (r TeamRole) In(roles []TeamRole) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// TeamMember ties a user to a team with a role. UserName caches the user's
// display name at the time the member was added.
type TeamMember struct {
	ID        int       `json:"id"`
	TeamID    int       `json:"team_id" gorm:"uniqueIndex:idx_team_member"`
	UserID    int       `json:"user_id" gorm:"uniqueIndex:idx_team_member"`
	Role      TeamRole  `json:"role"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Team has an explicit owner column. The owner also appears in Members with
// role owner; mutations check OwnerID, never the member list position.
type Team struct {
	ID          int          `json:"id"`
	UUID        string       `json:"uuid"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	OwnerID     int          `json:"owner_id"`
	Members     []TeamMember `json:"members"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Member returns the membership entry for the given user.
func (t *Team) Member(userID int) (TeamMember, bool) {
	for _, m := range t.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return TeamMember{}, false
}
