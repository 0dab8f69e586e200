package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/coursebin/internal/domain"
)

var testUserCounter atomic.Int64

// Account options
type AccountOption func(*domain.Account)

func WithRole(r domain.AccountRole) AccountOption {
	return func(a *domain.Account) {
		a.Role = r
	}
}

func WithAccountStatus(s domain.EntityStatus) AccountOption {
	return func(a *domain.Account) {
		a.Status = s
	}
}

func NewTestAccount(username string, opts ...AccountOption) *domain.Account {
	now := time.Now().UTC()
	n := testUserCounter.Add(1)
	a := &domain.Account{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     fmt.Sprintf("%s%d@example.com", username, n),
		Role:      domain.RoleInstructor,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Course options
type CourseOption func(*domain.Course)

func WithCourseStatus(s domain.EntityStatus) CourseOption {
	return func(c *domain.Course) {
		c.Status = s
	}
}

func WithCourseDescription(d string) CourseOption {
	return func(c *domain.Course) {
		c.Description = d
	}
}

func NewTestCourse(authorID, name string, opts ...CourseOption) *domain.Course {
	now := time.Now().UTC()
	c := &domain.Course{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Name:      name,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chapter options
type ChapterOption func(*domain.Chapter)

func WithChapterStatus(s domain.EntityStatus) ChapterOption {
	return func(c *domain.Chapter) {
		c.Status = s
	}
}

func WithChapterPrerequisite(chapterID string) ChapterOption {
	return func(c *domain.Chapter) {
		c.UnlockAfterChapterID = &chapterID
	}
}

func WithChapterOrder(i int) ChapterOption {
	return func(c *domain.Chapter) {
		c.OrderIndex = i
	}
}

func NewTestChapter(courseID, name string, opts ...ChapterOption) *domain.Chapter {
	now := time.Now().UTC()
	c := &domain.Chapter{
		ID:        uuid.New().String(),
		CourseID:  courseID,
		Name:      name,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lesson options
type LessonOption func(*domain.Lesson)

func WithLessonStatus(s domain.EntityStatus) LessonOption {
	return func(l *domain.Lesson) {
		l.Status = s
	}
}

func WithLessonPrerequisite(lessonID string) LessonOption {
	return func(l *domain.Lesson) {
		l.UnlockAfterLessonID = &lessonID
	}
}

func WithLessonOrder(i int) LessonOption {
	return func(l *domain.Lesson) {
		l.OrderIndex = i
	}
}

func NewTestLesson(chapterID, name string, opts ...LessonOption) *domain.Lesson {
	now := time.Now().UTC()
	l := &domain.Lesson{
		ID:        uuid.New().String(),
		ChapterID: chapterID,
		Name:      name,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Enrollment options
type EnrollmentOption func(*domain.Enrollment)

func WithEnrollmentStatus(s domain.EntityStatus) EnrollmentOption {
	return func(e *domain.Enrollment) {
		e.Status = s
	}
}

func NewTestEnrollment(courseID, userID string, opts ...EnrollmentOption) *domain.Enrollment {
	now := time.Now().UTC()
	e := &domain.Enrollment{
		ID:         uuid.New().String(),
		CourseID:   courseID,
		UserID:     userID,
		Status:     domain.StatusActive,
		EnrolledAt: now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestProgress(lessonID, userID string) *domain.UserProgress {
	return &domain.UserProgress{
		ID:          uuid.New().String(),
		LessonID:    lessonID,
		UserID:      userID,
		ProgressPct: 50,
		UpdatedAt:   time.Now().UTC(),
	}
}

func NewTestQuizAttempt(lessonID, userID string) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:          uuid.New().String(),
		LessonID:    lessonID,
		UserID:      userID,
		Score:       80,
		AttemptedAt: time.Now().UTC(),
	}
}

func NewTestCertificate(enrollmentID, userID string) *domain.Certificate {
	return &domain.Certificate{
		ID:           uuid.New().String(),
		EnrollmentID: enrollmentID,
		UserID:       userID,
		IssuedAt:     time.Now().UTC(),
	}
}

func NewTestPayment(userID string, amountCents int64) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		AmountCents: amountCents,
		CreatedAt:   time.Now().UTC(),
	}
}

func NewTestFeedback(courseID, userID string) *domain.CourseFeedback {
	return &domain.CourseFeedback{
		ID:        uuid.New().String(),
		CourseID:  courseID,
		UserID:    userID,
		Rating:    4,
		Comment:   "solid course",
		CreatedAt: time.Now().UTC(),
	}
}
