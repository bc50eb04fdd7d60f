package typed

import "sync"

// RegistryCache memoizes compiled registries by class name. A registry is
// built at most once per name; concurrent Resolve calls may race to build,
// which is benign because compilation is deterministic and the first stored
// result wins. The cache is read-only after a name is resolved.
//
// The cache is explicit and injectable: pass one through your declarations
// (and to Ref types) instead of relying on hidden globals. DefaultCache
// exists for the common single-cache case.
type RegistryCache struct {
	mu   sync.RWMutex
	regs map[string]*Registry
}

// NewRegistryCache returns an empty cache.
func NewRegistryCache() *RegistryCache {
	return &RegistryCache{regs: map[string]*Registry{}}
}

// DefaultCache is the process-wide cache used by Ref when none is supplied.
var DefaultCache = NewRegistryCache()

// Resolve returns the registry for name, invoking build on first use. Build
// errors are not cached; a later Resolve may retry.
func (c *RegistryCache) Resolve(name string, build func() (*Registry, error)) (*Registry, error) {
	c.mu.RLock()
	if r, ok := c.regs[name]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	r, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if prev, ok := c.regs[name]; ok { // double-check
		c.mu.Unlock()
		return prev, nil
	}
	c.regs[name] = r
	c.mu.Unlock()
	return r, nil
}

// MustResolve is like Resolve but panics on build error.
func (c *RegistryCache) MustResolve(name string, build func() (*Registry, error)) *Registry {
	r, err := c.Resolve(name, build)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the registry previously resolved under name, if any.
func (c *RegistryCache) Lookup(name string) (*Registry, bool) {
	c.mu.RLock()
	r, ok := c.regs[name]
	c.mu.RUnlock()
	return r, ok
}
