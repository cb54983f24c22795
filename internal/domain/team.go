package domain

import "time"

type User struct {
	ID        int64
	UUID      string
	Name      string
	Email     string
	CreatedAt time.Time
}

type Team struct {
	ID        int64
	UUID      string
	Name      string
	CreatedAt time.Time
}

type TeamMember struct {
	TeamID   int64
	UserID   int64
	Role     MemberRole
	JoinedAt time.Time
}
