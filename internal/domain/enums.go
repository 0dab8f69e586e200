package domain

// EntityType identifies a deletable entity kind. The set is closed: the
// deletion engine dispatches on it and rejects anything outside it.
type EntityType string

const (
	EntityCourse     EntityType = "Course"
	EntityChapter    EntityType = "Chapter"
	EntityLesson     EntityType = "Lesson"
	EntityAccount    EntityType = "Account"
	EntityEnrollment EntityType = "Enrollment"
)

// AllEntityTypes lists every supported entity type in recycle-bin fan-out order.
var AllEntityTypes = []EntityType{
	EntityCourse, EntityChapter, EntityLesson, EntityAccount, EntityEnrollment,
}

func (e EntityType) Valid() bool {
	switch e {
	case EntityCourse, EntityChapter, EntityLesson, EntityAccount, EntityEnrollment:
		return true
	}
	return false
}

// EntityStatus is the integer lifecycle status shared by all entity types.
// StatusArchived is the universal soft-delete sentinel; no entity type has a
// separate "deleted" state.
type EntityStatus int

const (
	StatusPublished EntityStatus = 1
	StatusActive    EntityStatus = 2
	StatusInactive  EntityStatus = 3
	StatusArchived  EntityStatus = 4
	StatusSuspended EntityStatus = 5
	StatusCompleted EntityStatus = 6
)

func (s EntityStatus) Archived() bool { return s == StatusArchived }

// Operation is the kind of lifecycle mutation recorded in the audit trail.
type Operation string

const (
	OpSoftDelete Operation = "SoftDelete"
	OpHardDelete Operation = "HardDelete"
	OpRestore    Operation = "Restore"
)

type AccountRole string

const (
	RoleAdmin      AccountRole = "admin"
	RoleInstructor AccountRole = "instructor"
	RoleLearner    AccountRole = "learner"
)
