package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursebin/internal/domain"
)

func TestPolicyFor_AllEntityTypesCovered(t *testing.T) {
	for _, et := range domain.AllEntityTypes {
		p, ok := PolicyFor(et)
		require.True(t, ok, "missing policy for %s", et)
		assert.Equal(t, et, p.EntityType)
		assert.True(t, p.AllowSoftDelete, "%s must allow soft delete", et)
		assert.Positive(t, p.RetentionDays)
	}
}

func TestPolicyFor_HardDeleteOnlyForContentLeaves(t *testing.T) {
	hardDeletable := map[domain.EntityType]bool{
		domain.EntityChapter: true,
		domain.EntityLesson:  true,
	}
	for _, et := range domain.AllEntityTypes {
		p, _ := PolicyFor(et)
		assert.Equal(t, hardDeletable[et], p.AllowHardDelete, "hard delete flag for %s", et)
	}
}

func TestPolicyFor_AccountRequiresAdminApproval(t *testing.T) {
	p, ok := PolicyFor(domain.EntityAccount)
	require.True(t, ok)
	assert.True(t, p.RequiresAdminApproval)
	assert.Contains(t, p.BlockingRelationships, "PaymentTransactions")
}

func TestPolicyFor_UnknownType(t *testing.T) {
	_, ok := PolicyFor(domain.EntityType("Quiz"))
	assert.False(t, ok)
}
