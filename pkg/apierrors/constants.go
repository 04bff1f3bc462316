package apierrors

// Translation keys of the API error messages.
const (
	MsgInvalidID          = "invalidID"
	MsgInvalidPayload     = "invalidPayload"
	MsgInvalidDate        = "invalidDate"
	MsgInvalidQuery       = "invalidQuery"
	MsgFileTooLarge       = "fileTooLarge"
	MsgUnauthenticated    = "unauthenticated"
	MsgUnauthorized       = "unauthorized"
	MsgNotFound           = "notFound"
	MsgValidationFailed   = "validationFailed"
	MsgConflict           = "conflict"
	MsgInternalError      = "internalError"
	MsgTaskNotFound       = "taskNotFound"
	MsgProjectNotFound    = "projectNotFound"
	MsgUserNotFound       = "userNotFound"
	MsgSubtaskNotFound    = "subtaskNotFound"
	MsgCommentNotFound    = "commentNotFound"
	MsgFileNotFound       = "fileNotFound"
	MsgTitleRequired      = "titleRequired"
	MsgNameRequired       = "nameRequired"
	MsgContentRequired    = "contentRequired"
	MsgUserFieldsRequired = "userFieldsRequired"
	MsgInvalidStatus      = "invalidStatus"
	MsgInvalidPriority    = "invalidPriority"
	MsgInvalidRole        = "invalidRole"
	MsgInvalidMonth       = "invalidMonth"
	MsgSelfDeletion       = "selfDeletion"
	MsgOwnRoleChange      = "ownRoleChange"
	MsgSubtasksIncomplete = "subtasksIncomplete"
	MsgFileRequired       = "fileRequired"
	MsgInvalidCredentials = "invalidCredentials"
	MsgDuplicateUser      = "duplicateUser"
	MsgBlobWriteFailed    = "blobWriteFailed"
	MsgFileMetadataFailed = "fileMetadataFailed"
)

// AllMessages lists every key above. Each translation file defines all of
// them.
var AllMessages = []string{
	MsgInvalidID, MsgInvalidPayload, MsgInvalidDate, MsgInvalidQuery, MsgFileTooLarge,
	MsgUnauthenticated, MsgUnauthorized, MsgNotFound, MsgValidationFailed, MsgConflict,
	MsgInternalError, MsgTaskNotFound, MsgProjectNotFound, MsgUserNotFound, MsgSubtaskNotFound,
	MsgCommentNotFound, MsgFileNotFound, MsgTitleRequired, MsgNameRequired, MsgContentRequired,
	MsgUserFieldsRequired, MsgInvalidStatus, MsgInvalidPriority, MsgInvalidRole, MsgInvalidMonth,
	MsgSelfDeletion, MsgOwnRoleChange, MsgSubtasksIncomplete, MsgFileRequired, MsgInvalidCredentials,
	MsgDuplicateUser, MsgBlobWriteFailed, MsgFileMetadataFailed,
}
