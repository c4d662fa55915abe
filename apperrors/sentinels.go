package apperrors

// ErrDuplicateKey is the storage-neutral translation of a unique
// constraint violation. Repositories map driver errors onto it so
// services can treat "already exists" as an outcome, not a failure.
var ErrDuplicateKey = New(KindConflict, "DuplicateKey", "Record already exists!")
