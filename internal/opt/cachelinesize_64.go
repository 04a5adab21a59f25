//go:build waitx_cachelinesize_64

package opt

// CacheLineSize_ is force-set to 64 bytes via the waitx_cachelinesize_64
// build tag.
// Use: go build -tags=waitx_cachelinesize_64
const CacheLineSize_ = 64
