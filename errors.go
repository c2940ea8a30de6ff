package renderpass

import (
	"errors"

	"github.com/gogpu/renderpass/internal/debug"
)

var (
	// ErrPrecondition is wrapped by errors reporting caller logic bugs.
	ErrPrecondition = debug.ErrPrecondition

	// ErrAllocate is returned when an output buffer cannot be allocated.
	ErrAllocate = errors.New("renderpass: cannot allocate output buffer")

	// ErrClosed is returned by operations on a closed Core.
	ErrClosed = errors.New("renderpass: core closed")
)
