package apierrors

const (
	MsgInternalError   = "internalError"
	MsgUnauthorized    = "unauthorized"
	MsgInvalidSession  = "invalidSession"
	MsgForbidden       = "forbidden"
	MsgInvalidPayload  = "invalidPayload"
	MsgEmptyUpdate     = "emptyUpdate"
	MsgInvalidStatus   = "invalidStatus"
	MsgInvalidPriority = "invalidPriority"
	MsgInvalidDueDate  = "invalidDueDate"
	MsgInvalidLink     = "invalidDocumentationLink"
	MsgTitleRequired   = "titleRequired"
	MsgTitleTooLong    = "titleTooLong"

	MsgFailListTask   = "errorListTask"
	MsgFailCreateTask = "failCreateTask"
	MsgFailUpdateTask = "failUpdateTask"
	MsgFailDeleteTask = "failDeleteTask"
	MsgTaskNotFound   = "taskNotFound"

	MsgContentRequired = "contentRequired"
	MsgFailListNote    = "errorListNote"
	MsgFailCreateNote  = "failCreateNote"
	MsgFailUpdateNote  = "failUpdateNote"
	MsgFailDeleteNote  = "failDeleteNote"
	MsgNoteNotFound    = "noteNotFound"

	MsgCredentialsRequired   = "credentialsRequired"
	MsgInvalidEmail          = "invalidEmail"
	MsgPasswordTooLong       = "passwordTooLong"
	MsgEmailTaken            = "emailTaken"
	MsgInvalidCredentials    = "invalidCredentials"
	MsgInvalidTelegramLogin  = "invalidTelegramLogin"
	MsgTelegramNotConfigured = "telegramNotConfigured"
	MsgFailRegister          = "failRegister"
	MsgFailSignIn            = "failSignIn"

	MsgSearchQueryRequired   = "searchQueryRequired"
	MsgUserNotFound          = "userNotFound"
	MsgAlreadyFriends        = "alreadyFriends"
	MsgFriendRequestExists   = "friendRequestExists"
	MsgFriendRequestNotFound = "friendRequestNotFound"
	MsgSelfFriendRequest     = "selfFriendRequest"
	MsgInvalidFriendAction   = "invalidFriendAction"
	MsgFailFriends           = "failFriends"

	// Success messages share the translation bundles.
	MsgRegistered                = "registered"
	MsgSignedOut                 = "signedOut"
	MsgNoteDeleted               = "noteDeleted"
	MsgFriendRequestSent         = "friendRequestSent"
	MsgFriendRequestAutoAccepted = "friendRequestAutoAccepted"
	MsgFriendRequestAccepted     = "friendRequestAccepted"
	MsgFriendRequestRejected     = "friendRequestRejected"
)
