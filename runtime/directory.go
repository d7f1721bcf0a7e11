package runtime

import (
	"chat-server/domain"
	"chat-server/errors"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Directory is the authority on who is online.
// It keeps username -> client and client -> username in step so that both
// lookups are O(1); the relation is a bijection over authenticated sessions.
type Directory struct {
	mu       sync.RWMutex
	byName   map[string]*domain.Client
	byClient map[*domain.Client]string
}

func NewDirectory() *Directory {
	return &Directory{
		byName:   make(map[string]*domain.Client),
		byClient: make(map[*domain.Client]string),
	}
}

// Register binds username to client. The duplicate check and the insert
// happen in the same critical section.
func (d *Directory) Register(username string, client *domain.Client) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byName[username]; ok {
		return errors.ErrAlreadyLoggedIn
	}
	if _, ok := d.byClient[client]; ok {
		return errors.ErrClientRegistered
	}
	d.byName[username] = client
	d.byClient[client] = username
	return nil
}

func (d *Directory) LookupByUsername(username string) (*domain.Client, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	client, ok := d.byName[username]
	return client, ok
}

func (d *Directory) LookupByClient(client *domain.Client) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	username, ok := d.byClient[client]
	return username, ok
}

// Unregister removes both directions for client. Unknown clients are a no-op.
func (d *Directory) Unregister(client *domain.Client) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	username, ok := d.byClient[client]
	if !ok {
		return "", false
	}
	delete(d.byClient, client)
	delete(d.byName, username)
	return username, true
}

// AllExcept returns a copy of every online client but the given one.
// Order is unspecified.
func (d *Directory) AllExcept(client *domain.Client) []*domain.Client {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return lo.Filter(lo.Keys(d.byClient), func(c *domain.Client, _ int) bool {
		return c != client
	})
}

// Usernames returns the online usernames, sorted.
func (d *Directory) Usernames() []string {
	d.mu.RLock()
	names := lo.Keys(d.byName)
	d.mu.RUnlock()

	sort.Strings(names)
	return names
}

func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byName)
}
