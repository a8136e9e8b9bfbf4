package radix

// AuthStore persists wallet auth state (bearer tokens and their expiries)
// under well known key names. Implementations map an absent key to
// ErrTokenNotFound.
type AuthStore interface {
	Put(key, value string) (err error)
	Get(key string) (value string, err error)
	Delete(key string) (err error)
	Close() (err error)
}
