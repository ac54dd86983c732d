// Package thing provides the thing model for the smarthome core: the
// immutable Thing/Bridge descriptor, its channels and UIDs, staged
// builders, DTO mapping, and the merge/equality reconciliation between a
// live thing and a partial update.
//
// # Key Types
//
//   - Thing: immutable descriptor of a device or service instance;
//     Kind tags the plain vs bridge variant
//   - Channel: a named interaction point owned by a thing
//   - ThingUID / ThingTypeUID / ChannelUID: segmented identifiers
//   - Builder: accumulates fields and validates them into a Thing
//   - ThingDTO / ChannelDTO: partial, nullable-field update records
//   - Registry: thread-safe in-memory catalogue with merge-based updates
//
// # Reconciliation
//
// Equal decides whether two things are semantically identical; channel
// order does not matter and a bridge's children are ignored. Merge
// builds a new thing from an existing one plus a DTO under the rule
// "nil keeps, non-nil replaces", with collections replaced wholesale:
//
//	label := "Bedroom"
//	merged, err := thing.Merge(existing, thing.ThingDTO{Label: &label})
//
// Merge never mutates its input. If the existing thing is a bridge, the
// merged thing is a bridge too and takes over the existing children in
// order.
//
// # Thread Safety
//
// Things are immutable after Build (AddChild on a bridge is the one
// post-construction step and belongs to the construction phase). Equal
// and Merge are pure functions and safe to call from any number of
// goroutines. The Registry guards its map with a read-write mutex.
package thing
