package dfield

import "github.com/gogpu/dfield/cache"

// Loader memoizes ReadFile by path so renderer and scene code can resolve
// the same field textures repeatedly without re-reading them from disk.
//
// Loaded fields are shared between callers and must be treated as immutable.
// Loader is safe for concurrent use. Two goroutines racing on the same
// uncached path may both read the file; one result wins the cache slot and
// both results are valid, so no extra coordination is needed.
type Loader struct {
	fields *cache.Cache[string, *Field]
}

// NewLoader creates a loader that keeps up to capacity fields in memory.
// A capacity of 0 means unlimited.
func NewLoader(capacity int) *Loader {
	return &Loader{fields: cache.New[string, *Field](capacity)}
}

// Load returns the field stored at path, reading and caching it on first
// use.
func (l *Loader) Load(path string) (*Field, error) {
	if f, ok := l.fields.Get(path); ok {
		return f, nil
	}
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.fields.Set(path, f)
	Logger().Debug("dfield: loaded field",
		"path", path, "width", f.width, "height", f.height)
	return f, nil
}

// Evict drops the cached field for path, forcing the next Load to re-read
// the file. Returns true if an entry was cached.
func (l *Loader) Evict(path string) bool {
	return l.fields.Delete(path)
}

// Clear drops every cached field.
func (l *Loader) Clear() {
	l.fields.Clear()
}

// Len returns the number of cached fields.
func (l *Loader) Len() int {
	return l.fields.Len()
}
