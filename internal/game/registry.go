package game

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

var ErrDuplicateID = errors.New("client id already registered")

const registryBuckets = 64

// Registry resolves client ids to sessions. Buckets are keyed by the same
// xxHash that derives the ids themselves; collisions within a bucket chain
// through a slice rather than intrusive pointers. The registry never owns the
// sessions — it is populated and depopulated in lockstep with the server's
// session list.
type Registry struct {
	buckets [registryBuckets][]*Session
}

func NewRegistry() *Registry {
	return &Registry{}
}

func bucketIndex(id string) int {
	return int(xxhash.Sum64String(id) % registryBuckets)
}

// Put registers a session under its id. A session with the same id already
// present fails with ErrDuplicateID; hash-derived ids can collide, and the
// caller refuses the connection rather than shadowing an existing client.
func (r *Registry) Put(sess *Session) error {
	ind := bucketIndex(sess.id)

	for _, existing := range r.buckets[ind] {
		if existing.id == sess.id {
			return ErrDuplicateID
		}
	}

	r.buckets[ind] = append(r.buckets[ind], sess)
	return nil
}

// Get resolves an id to its session.
func (r *Registry) Get(id string) (*Session, bool) {
	for _, sess := range r.buckets[bucketIndex(id)] {
		if sess.id == id {
			return sess, true
		}
	}

	return nil, false
}

// Remove unregisters an id. The session itself stays with the server's
// session list.
func (r *Registry) Remove(id string) {
	ind := bucketIndex(id)

	for i, sess := range r.buckets[ind] {
		if sess.id == id {
			r.buckets[ind] = append(r.buckets[ind][:i], r.buckets[ind][i+1:]...)
			return
		}
	}
}

// Len counts registered sessions.
func (r *Registry) Len() int {
	n := 0
	for _, bucket := range r.buckets {
		n += len(bucket)
	}
	return n
}
