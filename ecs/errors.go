package ecs

import "github.com/rotisserie/eris"

var (
	// ErrUnknownComponentType is returned when a component type was never registered.
	ErrUnknownComponentType = eris.New("unknown component type")
	// ErrComponentNotFound is returned when an entity does not own the requested component.
	ErrComponentNotFound = eris.New("component not found on entity")
	// ErrEntityNotFound is returned for ids that are not (or no longer) alive.
	ErrEntityNotFound = eris.New("entity does not exist")
	// ErrComponentKindMismatch is returned when a per-entity operation targets a shared type or vice versa.
	ErrComponentKindMismatch = eris.New("component kind mismatch")
	// ErrStorageReleased is returned by storage operations after the world has shut down.
	ErrStorageReleased = eris.New("storage has been released")

	// ErrNotASystemType is the panic value for registering a type that does not implement System.
	ErrNotASystemType = eris.New("type does not implement System")
	// ErrInvalidLifecycleCall is the panic value for update/tick outside the valid lifecycle window.
	ErrInvalidLifecycleCall = eris.New("invalid lifecycle call")
)

// deadEntityError is returned by component lookups on an id that is not
// alive. A dead entity owns nothing, so it matches ErrComponentNotFound as
// well as the ErrEntityNotFound in its chain.
type deadEntityError struct {
	cause error
}

func (e *deadEntityError) Error() string { return e.cause.Error() }

func (e *deadEntityError) Unwrap() error { return e.cause }

func (e *deadEntityError) Is(target error) bool { return target == ErrComponentNotFound }
