package domain

import "time"

// DeleteAuditTrail is an append-only record of one executed lifecycle
// mutation. EntityStateSnapshot holds the serialized pre-mutation entity,
// best-effort (empty when the snapshot could not be taken).
type DeleteAuditTrail struct {
	ID                  string
	EntityType          EntityType
	EntityID            string
	ActorUserID         string
	Operation           Operation
	Reason              string
	EntityStateSnapshot string
	CreatedAt           time.Time
}
