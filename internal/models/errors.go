package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceRootNotFound is returned when placement cannot locate a source
// root for an artifact without a custom path. It aborts the whole request.
var ErrSourceRootNotFound = errors.New("cannot find source directory")

// ErrNotEntity is returned when the introspected class is not a persistence entity.
var ErrNotEntity = errors.New("class is not annotated as a persistence entity")

// ErrRunNotFound is returned when a generation run is not in the history.
var ErrRunNotFound = errors.New("run not found")

// SelectionError reports an unusable component or field selection.
type SelectionError struct {
	Reason string
}

func (e *SelectionError) Error() string {
	return e.Reason
}

// PathError reports a custom path that is invalid or cannot be created.
type PathError struct {
	Kind   ArtifactKind
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("the path '%s' for %s is not valid or cannot be created: %s", e.Path, e.Kind, e.Reason)
}

// PathErrors aggregates every invalid path found in one request.
type PathErrors []*PathError

func (e PathErrors) Error() string {
	msgs := make([]string, len(e))
	for i, pe := range e {
		msgs[i] = pe.Error()
	}
	return strings.Join(msgs, "; ")
}

// GenerationError is the single aggregated error of a generation request
// that failed after synthesis began. Placed lists artifacts already on disk.
type GenerationError struct {
	Kind   ArtifactKind
	Placed []*PlacedArtifact
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s after %d placed artifact(s): %v", e.Kind, len(e.Placed), e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
