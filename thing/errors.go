package thing

import "errors"

// Domain errors for the thing package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, thing.ErrMalformedUID) {
//	    // handle bad identifier
//	}
var (
	// ErrMalformedUID is returned when an identifier string cannot be
	// parsed into a valid UID.
	ErrMalformedUID = errors.New("thing: malformed uid")

	// ErrIncompleteThing is returned by Builder.Build when required
	// identity fields (uid, type uid) are missing.
	ErrIncompleteThing = errors.New("thing: incomplete")

	// ErrNilThing is returned when a merge is attempted against a nil
	// thing.
	ErrNilThing = errors.New("thing: nil thing")

	// ErrNotABridge is returned when a child is attached to a thing that
	// is not a bridge.
	ErrNotABridge = errors.New("thing: not a bridge")

	// ErrThingNotFound is returned when a thing UID does not exist in the
	// registry.
	ErrThingNotFound = errors.New("thing: not found")

	// ErrThingExists is returned when creating a thing with a UID that
	// already exists in the registry.
	ErrThingExists = errors.New("thing: already exists")
)
