package handlers

// User-facing response messages, one per failure class.
const (
	MsgUnauthorized      = "Unauthorized"
	MsgFailedToAuthorize = "Failed to authorize"
	MsgInvalidQuery      = "Invalid query"
	MsgInvalidBody       = "Invalid body"
	MsgFailedToSave      = "Failed to save"
	MsgFailedToDelete    = "Failed to delete"
	MsgUnknownError      = "Unknown error"
	MsgNotFound          = "Not found"
)
