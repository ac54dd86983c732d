// Package provision loads declarative thing definitions from YAML.
//
// A definition file lists things with their identity, configuration and
// channels. Bridges are declared with kind: bridge; any thing in the
// same file whose bridge field names a declared bridge is registered as
// its child. Parsed things are ready to be handed to a thing.Registry.
package provision
