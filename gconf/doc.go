/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension declares a protobuf configuration message that is stored as a
singleton under the "_c:<package>" key. The initial configuration is loaded
from the genesis file "conf" section. An owner declared in the configuration
can later update it with a patch message.

Not being able to load a configuration is a critical condition for an
extension. All functions return an error wrapping ErrNotFound when the
configuration was never stored.
*/
package gconf
