package blueprint

import "github.com/scigolib/meshkit"

// Node is the tree type Verify and the converters operate on; blueprint
// never redefines its own Node type, it consumes the kernel's directly.
type Node = *meshkit.Node
