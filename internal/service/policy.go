package service

import "github.com/alexanderramin/coursebin/internal/domain"

// EntityDeletionPolicy declares the deletion capabilities and relationship
// rules for one entity type. Policies are immutable and loaded once at
// process start; they are never mutated at runtime.
type EntityDeletionPolicy struct {
	EntityType      domain.EntityType
	AllowSoftDelete bool
	AllowHardDelete bool
	// BlockingRelationships names relationships whose presence prevents any
	// deletion until resolved.
	BlockingRelationships []string
	// CascadeDeleteRelationships names child relationships removed alongside
	// the parent on hard delete.
	CascadeDeleteRelationships []string
	// RetentionDays is informational: how long a soft-deleted row should be
	// retained before it is eligible for a hard purge. Not enforced here.
	RetentionDays         int
	RequiresAdminApproval bool
}

var deletionPolicies = map[domain.EntityType]EntityDeletionPolicy{
	domain.EntityCourse: {
		EntityType:                 domain.EntityCourse,
		AllowSoftDelete:            true,
		AllowHardDelete:            false,
		BlockingRelationships:      []string{"Enrollments"},
		CascadeDeleteRelationships: []string{"Chapters", "Lessons", "Feedbacks"},
		RetentionDays:              90,
	},
	domain.EntityChapter: {
		EntityType:                 domain.EntityChapter,
		AllowSoftDelete:            true,
		AllowHardDelete:            true,
		CascadeDeleteRelationships: []string{"Lessons"},
		RetentionDays:              30,
	},
	domain.EntityLesson: {
		EntityType:            domain.EntityLesson,
		AllowSoftDelete:       true,
		AllowHardDelete:       true,
		BlockingRelationships: []string{"UserProgresses"},
		RetentionDays:         30,
	},
	domain.EntityAccount: {
		EntityType:            domain.EntityAccount,
		AllowSoftDelete:       true,
		AllowHardDelete:       false,
		RequiresAdminApproval: true,
		BlockingRelationships: []string{"CourseAuthors", "Enrollments", "PaymentTransactions"},
		RetentionDays:         365,
	},
	domain.EntityEnrollment: {
		EntityType:            domain.EntityEnrollment,
		AllowSoftDelete:       true,
		AllowHardDelete:       false,
		BlockingRelationships: []string{"Certificates", "PaymentTransactions"},
		RetentionDays:         180,
	},
}

// PolicyFor returns the deletion policy for the given entity type.
func PolicyFor(entityType domain.EntityType) (EntityDeletionPolicy, bool) {
	p, ok := deletionPolicies[entityType]
	return p, ok
}
