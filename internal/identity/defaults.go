package identity

// DefaultAccount is one of the built-in identities that exist without any
// stored record. A default account's password applies only until a custom
// credential is written for its username.
type DefaultAccount struct {
	Username string
	Password string
	Role     Role
}

var defaultAccounts = []DefaultAccount{
	{Username: "admin", Password: "admin123", Role: RoleAdmin},
	{Username: "user", Password: "user123", Role: RoleUser},
	{Username: "superadmin", Password: "super123", Role: RoleSuperadmin},
}

// defaultAccount returns the built-in account for username, if any.
func defaultAccount(username string) (DefaultAccount, bool) {
	for _, a := range defaultAccounts {
		if a.Username == username {
			return a, true
		}
	}
	return DefaultAccount{}, false
}

// IsDefaultUsername reports whether username is one of the built-in accounts.
func IsDefaultUsername(username string) bool {
	_, ok := defaultAccount(username)
	return ok
}

// DefaultUsernames returns the built-in account names.
func DefaultUsernames() []string {
	names := make([]string, 0, len(defaultAccounts))
	for _, a := range defaultAccounts {
		names = append(names, a.Username)
	}
	return names
}
