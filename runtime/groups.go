package runtime

import (
	"chat-server/domain"
	"chat-server/errors"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

type Set map[*domain.Client]struct{}

// GroupRegistry maps a group name to its member connections.
// Membership is by connection: logging in again yields a new client that is
// not a member of anything. Groups are kept once created, even when empty.
// Its lock is independent of the Directory's.
type GroupRegistry struct {
	mu     sync.Mutex
	log    *slog.Logger
	groups map[string]Set
}

func NewGroupRegistry(log *slog.Logger) *GroupRegistry {
	return &GroupRegistry{
		log:    log,
		groups: make(map[string]Set),
	}
}

// Create makes a new group whose sole member is its creator.
func (g *GroupRegistry) Create(name string, client *domain.Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.groups[name]; ok {
		return errors.ErrGroupExists
	}
	g.groups[name] = Set{client: {}}
	return nil
}

func (g *GroupRegistry) Join(name string, client *domain.Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.groups[name]
	if !ok {
		return errors.ErrGroupNotFound
	}
	if _, ok := members[client]; ok {
		return errors.ErrAlreadyMember
	}
	members[client] = struct{}{}
	return nil
}

// Leave removes client from the group. An unknown group reads as ErrNotMember.
func (g *GroupRegistry) Leave(name string, client *domain.Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.groups[name]
	if !ok {
		return errors.ErrNotMember
	}
	if _, ok := members[client]; !ok {
		return errors.ErrNotMember
	}
	delete(members, client)
	return nil
}

// Send delivers a group-tagged message to every member but the sender and
// returns how many sends succeeded. Members are copied under the lock and
// written to after it is released, so a slow member never stalls the registry.
// A failed send is logged and does not stop delivery to the others.
func (g *GroupRegistry) Send(name string, sender *domain.Client, message string) (int, error) {
	recipients, err := g.recipients(name, sender)
	if err != nil {
		return 0, err
	}

	line := domain.GroupLine(name, message)
	delivered := 0
	for _, member := range recipients {
		if err := member.Send(line); err != nil {
			g.log.Debug("Group delivery failed", "group", name, "client_id", member.ID, "error", err)
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (g *GroupRegistry) recipients(name string, sender *domain.Client) ([]*domain.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.groups[name]
	if !ok {
		return nil, errors.ErrNotMember
	}
	if _, ok := members[sender]; !ok {
		return nil, errors.ErrNotMember
	}
	return lo.Filter(lo.Keys(members), func(c *domain.Client, _ int) bool {
		return c != sender
	}), nil
}

// RemoveEverywhere strips client from every group and returns the names of
// the groups it was removed from.
func (g *GroupRegistry) RemoveEverywhere(client *domain.Client) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var left []string
	for name, members := range g.groups {
		if _, ok := members[client]; ok {
			delete(members, client)
			left = append(left, name)
		}
	}
	return left
}

// Members returns a copy of the group's members, nil if the group is unknown.
func (g *GroupRegistry) Members(name string) []*domain.Client {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.groups[name]
	if !ok {
		return nil
	}
	return lo.Keys(members)
}

func (g *GroupRegistry) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.groups)
}
