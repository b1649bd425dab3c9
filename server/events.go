package server

type endpointEventKind uint8

const (
	// unknown
	evUnknown endpointEventKind = iota

	// error
	evReadError
	evWriteError

	// ctrl
	evClose
)

type endpointEvent struct {
	kind endpointEventKind
	err  error
}
