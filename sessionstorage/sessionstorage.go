// Package sessionstorage provides the durable client-local key-value
// store the session state is mirrored into. It is a cache, not a source
// of truth: entries survive process restarts and are discarded wholesale
// when the session store finds them inconsistent.
package sessionstorage

// Store is a durable string key-value store. Writes are synchronous: a
// completed Set or Delete is observable by the next Get, including after
// a process restart.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
