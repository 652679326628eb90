package identity

import (
	"context"
	"encoding/json"
)

// snapshot is the decoded identity state at the start of an operation.
// Operations mutate the snapshot and write back only the collections they
// touched.
type snapshot struct {
	credentials map[string]string
	users       []RegisteredUser
	renames     map[string]string // old username -> new username
	deleted     map[string]struct{}
}

// load reads and decodes all identity collections. Store errors propagate;
// malformed JSON under a key is logged and treated as the empty collection
// so that a corrupt value never takes the whole module down.
func (s *Service) load(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{
		credentials: make(map[string]string),
		renames:     make(map[string]string),
		deleted:     make(map[string]struct{}),
	}

	if b, err := s.store.Get(ctx, keyCredentials); err != nil {
		return nil, err
	} else if len(b) > 0 {
		if err := json.Unmarshal(b, &snap.credentials); err != nil {
			s.log.Warn(ctx, "discarding malformed credentials", "error", err)
			snap.credentials = make(map[string]string)
		}
	}

	if b, err := s.store.Get(ctx, keyRegisteredUsers); err != nil {
		return nil, err
	} else if len(b) > 0 {
		if err := json.Unmarshal(b, &snap.users); err != nil {
			s.log.Warn(ctx, "discarding malformed user list", "error", err)
			snap.users = nil
		}
	}

	if b, err := s.store.Get(ctx, keyUsernameChanges); err != nil {
		return nil, err
	} else if len(b) > 0 {
		if err := json.Unmarshal(b, &snap.renames); err != nil {
			s.log.Warn(ctx, "discarding malformed rename history", "error", err)
			snap.renames = make(map[string]string)
		}
	}

	if b, err := s.store.Get(ctx, keyDeletedUsernames); err != nil {
		return nil, err
	} else if len(b) > 0 {
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			s.log.Warn(ctx, "discarding malformed deleted list", "error", err)
		} else {
			for _, n := range names {
				snap.deleted[n] = struct{}{}
			}
		}
	}

	return snap, nil
}

func (s *Service) saveCredentials(ctx context.Context, snap *snapshot) error {
	b, err := json.Marshal(snap.credentials)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyCredentials, b)
}

func (s *Service) saveUsers(ctx context.Context, snap *snapshot) error {
	users := snap.users
	if users == nil {
		users = []RegisteredUser{}
	}
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyRegisteredUsers, b)
}

func (s *Service) saveRenames(ctx context.Context, snap *snapshot) error {
	b, err := json.Marshal(snap.renames)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyUsernameChanges, b)
}

func (s *Service) saveDeleted(ctx context.Context, snap *snapshot) error {
	names := make([]string, 0, len(snap.deleted))
	for n := range snap.deleted {
		names = append(names, n)
	}
	b, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyDeletedUsernames, b)
}

// findUser returns a pointer into snap.users for the given username.
func (snap *snapshot) findUser(username string) *RegisteredUser {
	for i := range snap.users {
		if snap.users[i].Username == username {
			return &snap.users[i]
		}
	}
	return nil
}

func (snap *snapshot) findUserByID(id string) *RegisteredUser {
	for i := range snap.users {
		if snap.users[i].ID == id {
			return &snap.users[i]
		}
	}
	return nil
}

func (snap *snapshot) isDeleted(username string) bool {
	_, ok := snap.deleted[username]
	return ok
}

// originOf walks the rename history backwards from username to the earliest
// name in its chain. Cycles in inconsistent history terminate the walk.
func (snap *snapshot) originOf(username string) string {
	cur := username
	seen := map[string]bool{cur: true}
	for {
		prev := ""
		for old, renamed := range snap.renames {
			if renamed == cur {
				prev = old
				break
			}
		}
		if prev == "" || seen[prev] {
			return cur
		}
		cur = prev
		seen[cur] = true
	}
}

// chainNames returns username together with every earlier name in its
// rename chain.
func (snap *snapshot) chainNames(username string) []string {
	names := []string{username}
	cur := username
	seen := map[string]bool{cur: true}
	for {
		prev := ""
		for old, renamed := range snap.renames {
			if renamed == cur {
				prev = old
				break
			}
		}
		if prev == "" || seen[prev] {
			return names
		}
		names = append(names, prev)
		cur = prev
		seen[cur] = true
	}
}

// roleOf resolves the effective role of username: the role of the default
// identity its rename chain originates from, else the role on its registered
// record, else RoleUser.
func (snap *snapshot) roleOf(username string) Role {
	if def, ok := defaultAccount(snap.originOf(username)); ok {
		return def.Role
	}
	if u := snap.findUser(username); u != nil && u.Role != "" {
		return u.Role
	}
	return RoleUser
}

// verifyPassword checks password for username with the if-present-else
// chain used by ChangePassword and ChangeUsername: a custom credential is
// authoritative when present, then the default table, then the registered
// record.
func (snap *snapshot) verifyPassword(username, password string) bool {
	if stored, ok := snap.credentials[username]; ok {
		return stored == password
	}
	if def, ok := defaultAccount(username); ok {
		return def.Password == password
	}
	if u := snap.findUser(username); u != nil {
		return u.Password == password
	}
	return false
}
