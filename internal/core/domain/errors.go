package domain

import "errors"

// ErrInvalidTTL is an error thrown when a requested link TTL is out of bounds
var ErrInvalidTTL = errors.New("invalid ttl")

// ErrFileNotFound is an error thrown when a file does not exist or is not active
var ErrFileNotFound = errors.New("file not found")

// ErrFileExpired is an error thrown when the file's own expiry has passed
var ErrFileExpired = errors.New("file expired")

// ErrTokenNotFound is an error thrown when no link matches a token
var ErrTokenNotFound = errors.New("token not found")

// ErrLinkNotFound is an error thrown when no link matches an id
var ErrLinkNotFound = errors.New("link not found")

// ErrLinkExpired is an error thrown when a link is past its expiry
var ErrLinkExpired = errors.New("link expired")

// ErrLinkRevoked is an error thrown when a link was explicitly revoked
var ErrLinkRevoked = errors.New("link revoked")

// ErrObjectMissing is an error thrown when metadata says active but the blob is absent
var ErrObjectMissing = errors.New("storage object missing")

// ErrStorageUnavailable is an error thrown when the storage backend cannot be reached
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrInvalidFileType is an error thrown when a file extension is not allowed
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when file size exceeds the configured maximum
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrAlreadyExists is an error thrown when a unique constraint rejects a row
var ErrAlreadyExists = errors.New("already exists")

// ErrInternal is an error thrown when an unrecoverable internal failure occurs
var ErrInternal = errors.New("internal error")
