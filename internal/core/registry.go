// registry.go - Process-wide façade registry (spec §5): "A process-wide
// registry of active proof façades (keyed by random 256-bit names) holds
// one proving instance per handle; creation and destruction are not
// thread-safe (the caller synchronizes)."
//
// The reference implementation kept two separate maps for this (one
// per façade family) and in one place built a lookup name for one map but
// queried the other — spec §9 flags it outright as a copy-paste bug. There
// is exactly one map here and every handle, regardless of (NIn, NOut),
// goes through it.
package core

var facadeRegistry = make(map[Bytes32]*Facade)

// RegisterFacade inserts f under a freshly sampled random 256-bit handle
// and returns it.
func RegisterFacade(f *Facade) Bytes32 {
	handle := RandomBytes32()
	facadeRegistry[handle] = f
	return handle
}

// LookupFacade returns the façade registered under handle, if any.
func LookupFacade(handle Bytes32) (*Facade, bool) {
	f, ok := facadeRegistry[handle]
	return f, ok
}

// DestroyFacade removes handle from the registry. It is a no-op if the
// handle is not present.
func DestroyFacade(handle Bytes32) {
	delete(facadeRegistry, handle)
}
