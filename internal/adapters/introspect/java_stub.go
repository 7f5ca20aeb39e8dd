//go:build !cgo

package introspect

import (
	"context"

	"github.com/example/entitygen/internal/models"
)

// Available reports whether Java sources can be introspected.
// Returns false when CGO is not available.
func Available() bool {
	return false
}

func parseJavaSource(ctx context.Context, source []byte) (*models.EntityModel, error) {
	return nil, ErrIntrospectorUnavailable
}
