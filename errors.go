package adminctl

import (
	"errors"

	"github.com/tgstore/adminctl/internal/api"
)

// Sentinel errors for common failure conditions.
// Re-exported from the api package where applicable.
var (
	// ErrUnauthorized indicates the admin token was missing or rejected.
	ErrUnauthorized = api.ErrUnauthorized

	// ErrNotFound indicates the product does not exist.
	ErrNotFound = api.ErrNotFound

	// ErrUnsupportedMedia indicates a file does not match its slot
	// (a video passed as the image, or vice versa).
	ErrUnsupportedMedia = api.ErrUnsupportedMedia

	// ErrSuperseded indicates a newer job started before this one resolved;
	// the stale job's results were discarded.
	ErrSuperseded = errors.New("upload job superseded by a newer job")
)
