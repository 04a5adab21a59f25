//go:build waitx_cachelinesize_128

package opt

// CacheLineSize_ is force-set to 128 bytes via the waitx_cachelinesize_128
// build tag.
// Use: go build -tags=waitx_cachelinesize_128
const CacheLineSize_ = 128
