// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody bounds every JSON request body. Blog content is the
	// largest payload the API accepts.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxBlogContent is the longest sanitized blog body we store.
	MaxBlogContent = 512 << 10 // 512 KB
)
