package identity

// Keys owned by this package inside the identity store. ResetAllData clears
// the whole store, so every key added here must belong to identity state.
const (
	keyCredentials      = "custom_credentials"
	keyRegisteredUsers  = "registered_users"
	keyUsernameChanges  = "username_change_history"
	keyDeletedUsernames = "deleted_usernames"

	keySessionUsername  = "session_username"
	keySessionRole      = "session_role"
	keySessionLoginTime = "session_login_time"

	keyUsernameChanged   = "username_changed"
	keyPasswordChangedAt = "password_changed_at"
)
