// Package worlds embeds the default world shipped with the binary.
package worlds

import "embed"

// FS holds the Lua sources of the bundled worlds.
//
//go:embed dragons_realm/*.lua
var FS embed.FS

// Dir is the directory of the default world inside FS.
const Dir = "dragons_realm"
