package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessAction is the kind of action recorded in the access trail
type AccessAction string

const (
	ActionUploaded      AccessAction = "uploaded"
	ActionDownloaded    AccessAction = "downloaded"
	ActionLinkGenerated AccessAction = "link_generated"
	ActionLinkExpired   AccessAction = "link_expired"
	ActionFileDeleted   AccessAction = "file_deleted"
)

// AccessLog is an append-only record of an action performed on a file.
// The core never mutates or deletes these rows.
type AccessLog struct {
	ID        uuid.UUID
	FileID    uuid.UUID
	LinkID    *uuid.UUID
	Action    AccessAction
	Timestamp time.Time
	IP        string
}
