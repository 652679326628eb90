package identity

// Resolution is the outcome of a single credential resolver.
type Resolution int

const (
	// ResolutionSkip means the resolver has no opinion; try the next one.
	ResolutionSkip Resolution = iota
	// ResolutionMatch means the credentials are valid.
	ResolutionMatch
	// ResolutionReject means the resolver is authoritative for the username
	// and the password is wrong; later resolvers must not be consulted.
	ResolutionReject
)

// Resolver verifies a username/password pair against one credential source.
// Resolvers are tried in a fixed declared order; the first non-Skip outcome
// decides authentication.
type Resolver interface {
	Name() string
	Resolve(username, password string, snap *snapshot) Resolution
}

// customResolver checks the custom-credentials map. An entry, once present,
// is authoritative: a mismatch rejects with no fallback to defaults.
type customResolver struct{}

func (customResolver) Name() string { return "custom" }

func (customResolver) Resolve(username, password string, snap *snapshot) Resolution {
	stored, ok := snap.credentials[username]
	if !ok {
		return ResolutionSkip
	}
	if stored == password {
		return ResolutionMatch
	}
	return ResolutionReject
}

// defaultResolver checks the built-in account table. A mismatch skips so
// that a registered user who happens to share a default name is still tried.
type defaultResolver struct{}

func (defaultResolver) Name() string { return "default" }

func (defaultResolver) Resolve(username, password string, snap *snapshot) Resolution {
	def, ok := defaultAccount(username)
	if !ok {
		return ResolutionSkip
	}
	if def.Password == password {
		return ResolutionMatch
	}
	return ResolutionSkip
}

// registeredResolver checks registered user records.
type registeredResolver struct{}

func (registeredResolver) Name() string { return "registered" }

func (registeredResolver) Resolve(username, password string, snap *snapshot) Resolution {
	u := snap.findUser(username)
	if u == nil {
		return ResolutionSkip
	}
	if u.Password == password {
		return ResolutionMatch
	}
	return ResolutionSkip
}

func defaultResolvers() []Resolver {
	return []Resolver{customResolver{}, defaultResolver{}, registeredResolver{}}
}
