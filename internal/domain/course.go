package domain

import "time"

type Course struct {
	ID          string
	AuthorID    string
	Name        string
	Description string
	Status      EntityStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Live reports whether the course is visible to learners (published or active).
func (c *Course) Live() bool {
	return c.Status == StatusPublished || c.Status == StatusActive
}

// Chapter is an ordered section of a course. UnlockAfterChapterID, when set,
// declares another chapter of the same course as this chapter's prerequisite.
type Chapter struct {
	ID                   string
	CourseID             string
	Name                 string
	Description          string
	OrderIndex           int
	UnlockAfterChapterID *string
	Status               EntityStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Lesson belongs to a chapter. UnlockAfterLessonID mirrors the chapter-level
// prerequisite convention at lesson granularity.
type Lesson struct {
	ID                  string
	ChapterID           string
	Name                string
	Description         string
	OrderIndex          int
	UnlockAfterLessonID *string
	Status              EntityStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// UserProgress records a learner's advancement through a single lesson.
type UserProgress struct {
	ID          string
	LessonID    string
	UserID      string
	ProgressPct float64
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

type QuizAttempt struct {
	ID          string
	LessonID    string
	UserID      string
	Score       float64
	AttemptedAt time.Time
}

type CourseFeedback struct {
	ID        string
	CourseID  string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
