package runtime

import (
	"chat-server/domain"
	"chat-server/errors"
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*domain.Client, net.Conn) {
	t.Helper()
	server, peer := net.Pipe()
	client := domain.NewClient(server, 0)
	t.Cleanup(func() {
		_ = client.Close()
		_ = peer.Close()
	})
	return client, peer
}

func TestDirectory_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	alice, _ := newTestClient(t)

	// Given nobody is online
	req.Zero(directory.Count())

	// When alice registers
	req.NoError(directory.Register("alice", alice))

	// Then both directions resolve
	client, ok := directory.LookupByUsername("alice")
	req.True(ok)
	req.Same(alice, client)

	username, ok := directory.LookupByClient(alice)
	req.True(ok)
	req.Equal("alice", username)
	req.Equal([]string{"alice"}, directory.Usernames())
}

func TestDirectory_Register_Duplicate_Username(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	first, _ := newTestClient(t)
	second, _ := newTestClient(t)

	req.NoError(directory.Register("alice", first))

	// When a second connection claims the same username
	err := directory.Register("alice", second)

	// Then it is rejected and the directory is untouched
	req.ErrorIs(err, errors.ErrAlreadyLoggedIn)
	client, _ := directory.LookupByUsername("alice")
	req.Same(first, client)
	_, ok := directory.LookupByClient(second)
	req.False(ok)
	req.Equal(1, directory.Count())
}

func TestDirectory_Register_Same_Client_Twice(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	client, _ := newTestClient(t)

	req.NoError(directory.Register("alice", client))
	req.ErrorIs(directory.Register("bob", client), errors.ErrClientRegistered)
	_, ok := directory.LookupByUsername("bob")
	req.False(ok)
}

func TestDirectory_Unregister(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	alice, _ := newTestClient(t)
	bob, _ := newTestClient(t)
	req.NoError(directory.Register("alice", alice))
	req.NoError(directory.Register("bob", bob))

	// When alice leaves
	username, ok := directory.Unregister(alice)
	req.True(ok)
	req.Equal("alice", username)

	// Then only bob is left, and unregistering again is a no-op
	_, ok = directory.LookupByUsername("alice")
	req.False(ok)
	_, ok = directory.Unregister(alice)
	req.False(ok)
	req.Equal([]string{"bob"}, directory.Usernames())
}

func TestDirectory_AllExcept(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	a, _ := newTestClient(t)
	b, _ := newTestClient(t)
	c, _ := newTestClient(t)
	req.NoError(directory.Register("a", a))
	req.NoError(directory.Register("b", b))
	req.NoError(directory.Register("c", c))

	others := directory.AllExcept(a)

	req.Len(others, 2)
	req.ElementsMatch([]*domain.Client{b, c}, others)
}

func TestDirectory_Concurrent_Register_Keeps_Bijection(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	// Given many connections racing for a handful of usernames
	for i := 0; i < attempts; i++ {
		client, _ := newTestClient(t)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if directory.Register(fmt.Sprintf("user-%d", i%5), client) == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	// Then each username was granted exactly once
	req.Equal(5, accepted)
	req.Equal(5, directory.Count())
	for _, name := range directory.Usernames() {
		client, ok := directory.LookupByUsername(name)
		req.True(ok)
		back, ok := directory.LookupByClient(client)
		req.True(ok)
		req.Equal(name, back)
	}
}
