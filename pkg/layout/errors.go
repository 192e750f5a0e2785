package layout

import "errors"

var (
	// ErrImpossibleLayout is returned by [Bake] when the root size is not
	// constant on both axes. Nothing exists above the root to donate space.
	ErrImpossibleLayout = errors.New("impossible layout")

	// ErrNodeNotFound is returned by [Baked.Get] when no node with the
	// requested name was baked.
	ErrNodeNotFound = errors.New("node not found")

	// ErrUnregisteredEdge is returned by [Measurer.MeasureEdge] when a stretch
	// token is read before the baker registered a value for it. It indicates
	// a baker defect, never a user error.
	ErrUnregisteredEdge = errors.New("unregistered stretch edge")

	// ErrDuplicateName is returned by [Bake] and [Node.Validate] when two
	// nodes in one tree share a name. Names key the result map.
	ErrDuplicateName = errors.New("duplicate node name")

	// ErrUnmeasurable is returned by [Flex] and [NewFlow] when a child has a
	// stretch or aspect edge and so has no size of its own.
	ErrUnmeasurable = errors.New("node size is not measurable")
)
