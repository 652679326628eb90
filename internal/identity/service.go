// Package identity maintains the dashboard's credential and account
// bookkeeping: custom credentials overriding built-in defaults, registered
// users, username rename chains, soft-deleted usernames, and the session
// markers for the logged-in principal. All state lives behind the Store
// interface.
package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/asnhub/asndash/internal/logging"
	"github.com/google/uuid"
)

// User-facing operation messages.
const (
	msgAccountDeleted    = "account deleted or invalid"
	msgIncorrectPassword = "incorrect password"
	msgInvalidLogin      = "invalid username or password"
	msgNoSession         = "no user logged in"
	msgPasswordTooShort  = "password must be at least 6 characters"
	msgUsernameTooShort  = "username must be at least 3 characters"
	msgUsernameTaken     = "username already taken"
	msgUsernameInvalid   = "username is not available"
	msgUserNotFound      = "user not found"
)

const (
	minPasswordLength = 6
	minUsernameLength = 3
)

// Service implements the identity operations. Each operation loads a
// snapshot of the store, mutates it, and writes back the touched
// collections; the mutex serializes read-modify-write cycles so concurrent
// callers cannot interleave on the same keys.
type Service struct {
	store     Store
	log       logging.Logger
	resolvers []Resolver

	mu  sync.Mutex
	now func() time.Time
}

func NewService(store Store, log logging.Logger) *Service {
	return &Service{
		store:     store,
		log:       log.With("component", "identity"),
		resolvers: defaultResolvers(),
		now:       time.Now,
	}
}

// Authenticate verifies the credentials and, on success, writes the session
// markers. A soft-deleted username never authenticates, regardless of what
// the credential sources contain.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if snap.isDeleted(username) {
		s.log.Info(ctx, "login rejected for deleted username", "username", username)
		return &AuthResult{Message: msgAccountDeleted}, nil
	}
	// A name that was renamed away is no longer a login identity, even if it
	// still sits in the default table.
	if _, renamed := snap.renames[username]; renamed {
		s.log.Info(ctx, "login rejected for renamed-away username", "username", username)
		return &AuthResult{Message: msgInvalidLogin}, nil
	}

	for _, r := range s.resolvers {
		switch r.Resolve(username, password, snap) {
		case ResolutionMatch:
			role := snap.roleOf(username)
			if err := s.writeSession(ctx, username, role); err != nil {
				return nil, err
			}
			s.log.Info(ctx, "login succeeded", "username", username, "role", role, "resolver", r.Name())
			return &AuthResult{OK: true, Role: role}, nil
		case ResolutionReject:
			return &AuthResult{Message: msgIncorrectPassword}, nil
		}
	}

	return &AuthResult{Message: msgInvalidLogin}, nil
}

// ChangePassword replaces the logged-in user's password. The new password is
// stored as a custom credential, which from then on supersedes the default
// table; a registered record, if present, is updated in lock-step.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, err := s.sessionUsername(ctx)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return &Result{Message: msgNoSession}, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if !snap.verifyPassword(username, currentPassword) {
		return &Result{Message: msgIncorrectPassword}, nil
	}
	if len(newPassword) < minPasswordLength {
		return &Result{Message: msgPasswordTooShort}, nil
	}

	snap.credentials[username] = newPassword
	if err := s.saveCredentials(ctx, snap); err != nil {
		return nil, err
	}

	if u := snap.findUser(username); u != nil {
		u.Password = newPassword
		if err := s.saveUsers(ctx, snap); err != nil {
			return nil, err
		}
	}

	if err := s.store.Set(ctx, keyPasswordChangedAt, []byte(s.now().Format("2006-01-02"))); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "password changed", "username", username)
	return &Result{OK: true, Message: "password changed"}, nil
}

// ChangeUsername renames the logged-in account to newUsername, migrating the
// credential and registered record, recording the rename, and refreshing the
// session markers. For a default account that never customized its
// credential, a credential carrying the default password is synthesized so
// the identity survives the rename.
func (s *Service) ChangeUsername(ctx context.Context, password, newUsername string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.sessionUsername(ctx)
	if err != nil {
		return nil, err
	}
	if current == "" {
		return &Result{Message: msgNoSession}, nil
	}

	newUsername = strings.TrimSpace(newUsername)
	if len(newUsername) < minUsernameLength {
		return &Result{Message: msgUsernameTooShort}, nil
	}
	if newUsername == current {
		// Renaming to the name already held is a no-op success.
		return &Result{OK: true, Message: "username unchanged"}, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if IsDefaultUsername(newUsername) || snap.findUser(newUsername) != nil {
		return &Result{Message: msgUsernameTaken}, nil
	}
	if _, renamed := snap.renames[newUsername]; renamed || snap.isDeleted(newUsername) {
		return &Result{Message: msgUsernameInvalid}, nil
	}
	if !snap.verifyPassword(current, password) {
		return &Result{Message: msgIncorrectPassword}, nil
	}

	// Resolve the role before the history is rewritten.
	role := snap.roleOf(current)

	if pw, ok := snap.credentials[current]; ok {
		delete(snap.credentials, current)
		snap.credentials[newUsername] = pw
	} else if def, ok := defaultAccount(current); ok {
		snap.credentials[newUsername] = def.Password
	}

	if u := snap.findUser(current); u != nil {
		u.Username = newUsername
		u.Role = role
	} else if def, ok := defaultAccount(current); ok {
		snap.users = append(snap.users, RegisteredUser{
			ID:        uuid.NewString(),
			Username:  newUsername,
			Password:  snap.credentials[newUsername],
			Name:      def.Username,
			Role:      def.Role,
			CreatedAt: s.now(),
		})
	}

	snap.renames[current] = newUsername
	delete(snap.deleted, current)

	if err := s.saveCredentials(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.saveUsers(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.saveRenames(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.saveDeleted(ctx, snap); err != nil {
		return nil, err
	}

	if err := s.writeSession(ctx, newUsername, role); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, keyUsernameChanged, []byte("true")); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "username changed", "old", current, "new", newUsername, "role", role)
	return &Result{OK: true, Message: "username changed"}, nil
}

// Register creates a self-registered account with RoleUser.
func (s *Service) Register(ctx context.Context, username, password, email, name string) (*Result, error) {
	return s.CreateUser(ctx, username, password, email, name, RoleUser)
}

// CreateUser creates an account with an explicit role. Usernames colliding
// with a default identity, an existing registered user, or a soft-deleted
// name are rejected.
func (s *Service) CreateUser(ctx context.Context, username, password, email, name string, role Role) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	if len(username) < minUsernameLength {
		return &Result{Message: msgUsernameTooShort}, nil
	}
	if len(password) < minPasswordLength {
		return &Result{Message: msgPasswordTooShort}, nil
	}
	if role == "" {
		role = RoleUser
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if IsDefaultUsername(username) || snap.findUser(username) != nil {
		return &Result{Message: msgUsernameTaken}, nil
	}
	if snap.isDeleted(username) {
		return &Result{Message: msgUsernameInvalid}, nil
	}
	if _, renamed := snap.renames[username]; renamed {
		return &Result{Message: msgUsernameInvalid}, nil
	}

	snap.users = append(snap.users, RegisteredUser{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: s.now(),
	})
	if err := s.saveUsers(ctx, snap); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user created", "username", username, "role", role)
	return &Result{OK: true, Message: "user created"}, nil
}

// UpdateUser edits profile fields on a registered user by id. An empty role
// leaves the stored role unchanged.
func (s *Service) UpdateUser(ctx context.Context, id, email, name string, role Role) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	u := snap.findUserByID(id)
	if u == nil {
		return &Result{Message: msgUserNotFound}, nil
	}

	u.Email = email
	u.Name = name
	if role != "" {
		u.Role = role
	}

	if err := s.saveUsers(ctx, snap); err != nil {
		return nil, err
	}
	return &Result{OK: true, Message: "user updated"}, nil
}

// DeleteUser soft-deletes the account holding username: the registered
// record and credentials are removed, and the username plus every earlier
// name in its rename chain is added to the deleted list so none of them can
// authenticate again. The chain's rename entries are pruned. A logged-in
// session for the deleted account is cleared.
func (s *Service) DeleteUser(ctx context.Context, username string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	isRegistered := snap.findUser(username) != nil
	if !isRegistered && !IsDefaultUsername(username) {
		return &Result{Message: msgUserNotFound}, nil
	}

	names := snap.chainNames(username)
	for _, n := range names {
		snap.deleted[n] = struct{}{}
		delete(snap.credentials, n)
		delete(snap.renames, n)
	}

	if isRegistered {
		kept := snap.users[:0]
		for _, u := range snap.users {
			if u.Username != username {
				kept = append(kept, u)
			}
		}
		snap.users = kept
	}

	if err := s.saveUsers(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.saveCredentials(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.saveRenames(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.saveDeleted(ctx, snap); err != nil {
		return nil, err
	}

	if cur, err := s.sessionUsername(ctx); err != nil {
		return nil, err
	} else if cur == username {
		if err := s.clearSession(ctx); err != nil {
			return nil, err
		}
	}

	s.log.Info(ctx, "user deleted", "username", username, "blocked_names", len(names))
	return &Result{OK: true, Message: "user deleted"}, nil
}

// ListUsers returns all registered users.
func (s *Service) ListUsers(ctx context.Context) ([]RegisteredUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.users == nil {
		return []RegisteredUser{}, nil
	}
	return snap.users, nil
}

// GetUser returns the registered user with the given username, or nil.
func (s *Service) GetUser(ctx context.Context, username string) (*RegisteredUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	u := snap.findUser(username)
	if u == nil {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// CleanupInvalidCredentials deletes custom credentials whose username is
// neither a default identity nor a current registered user. Idempotent.
func (s *Service) CleanupInvalidCredentials(ctx context.Context) (*CleanupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	valid := make(map[string]struct{})
	for _, n := range DefaultUsernames() {
		valid[n] = struct{}{}
	}
	for _, u := range snap.users {
		valid[u.Username] = struct{}{}
	}

	cleaned := 0
	for name := range snap.credentials {
		if _, ok := valid[name]; !ok {
			delete(snap.credentials, name)
			cleaned++
		}
	}

	if cleaned > 0 {
		if err := s.saveCredentials(ctx, snap); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "cleaned orphaned credentials", "cleaned", cleaned)
	}

	return &CleanupResult{Cleaned: cleaned, Remaining: len(snap.credentials)}, nil
}

// ResetAllData irreversibly clears every key the identity module owns.
func (s *Service) ResetAllData(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return nil, err
	}
	s.log.Warn(ctx, "identity store reset")
	return &Result{OK: true, Message: "all identity data cleared"}, nil
}

// Session returns the logged-in principal, or nil when no session markers
// are set.
func (s *Service) Session(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, err := s.sessionUsername(ctx)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, nil
	}

	sess := &Session{Username: username}

	if b, err := s.store.Get(ctx, keySessionRole); err != nil {
		return nil, err
	} else if len(b) > 0 {
		sess.Role = Role(b)
	}

	if b, err := s.store.Get(ctx, keySessionLoginTime); err != nil {
		return nil, err
	} else if len(b) > 0 {
		if ts, err := time.Parse(time.RFC3339, string(b)); err == nil {
			sess.LoginTime = ts
		}
	}

	return sess, nil
}

// Logout clears the session markers.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearSession(ctx)
}

// ConsumeUsernameChangedFlag reports and clears the one-shot flag set by
// ChangeUsername. The UI uses it to force a re-login after a rename.
func (s *Service) ConsumeUsernameChangedFlag(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.store.Get(ctx, keyUsernameChanged)
	if err != nil {
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := s.store.Delete(ctx, keyUsernameChanged); err != nil {
		return false, err
	}
	return string(b) == "true", nil
}

// PasswordChangedAt returns the recorded date of the last password change,
// or "" if none was recorded.
func (s *Service) PasswordChangedAt(ctx context.Context) (string, error) {
	b, err := s.store.Get(ctx, keyPasswordChangedAt)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Service) sessionUsername(ctx context.Context) (string, error) {
	b, err := s.store.Get(ctx, keySessionUsername)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Service) writeSession(ctx context.Context, username string, role Role) error {
	if err := s.store.Set(ctx, keySessionUsername, []byte(username)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, keySessionRole, []byte(role)); err != nil {
		return err
	}
	return s.store.Set(ctx, keySessionLoginTime, []byte(s.now().Format(time.RFC3339)))
}

func (s *Service) clearSession(ctx context.Context) error {
	for _, key := range []string{keySessionUsername, keySessionRole, keySessionLoginTime} {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
