package domain

import "time"

type Account struct {
	ID        string
	Username  string
	Email     string
	Role      AccountRole
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }

// Enrollment ties a learner account to a course. Status follows the shared
// integer convention; StatusCompleted marks a finished enrollment.
type Enrollment struct {
	ID         string
	CourseID   string
	UserID     string
	Status     EntityStatus
	EnrolledAt time.Time
	UpdatedAt  time.Time
}

// Certificate is issued against a completed enrollment. Its existence blocks
// deletion of that enrollment.
type Certificate struct {
	ID           string
	EnrollmentID string
	UserID       string
	IssuedAt     time.Time
}

// PaymentTransaction is retained for compliance; any payment history pins the
// owning account to soft delete.
type PaymentTransaction struct {
	ID         string
	UserID     string
	AmountCents int64
	CreatedAt  time.Time
}
