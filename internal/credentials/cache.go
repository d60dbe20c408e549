package credentials

import "sync"

// Cache resolves secrets once and serves the outcome for the lifetime of the
// process. A failed resolution is cached too: it is a configuration defect
// and retrying with the same secrets cannot succeed.
type Cache struct {
	once sync.Once
	load func() (map[string]any, error)
	res  *Resolved
	err  error
}

// NewCache returns a Cache that obtains the raw secrets from load.
func NewCache(load func() (map[string]any, error)) *Cache {
	return &Cache{load: load}
}

// Get returns the resolved credential, resolving on the first call.
func (c *Cache) Get() (*Resolved, error) {
	c.once.Do(func() {
		secrets, err := c.load()
		if err != nil {
			c.err = err
			return
		}
		c.res, c.err = Resolve(secrets)
	})
	return c.res, c.err
}
