// Package script embeds a Lua runtime on top of a flare.Dispatcher so
// event listeners can be written as scripts.
//
// A Host owns a gopher-lua state and publishes a global `flare` table
// to it. Scripts register listeners, unregister them by function
// identity, and emit events through that table:
//
//	d := flare.New()
//	h := script.NewHost(d)
//	defer h.Close()
//
//	err := h.Run(`
//	    flare.on("save", function(payload)
//	        print("saved " .. payload.path)
//	    end)
//	`)
//
// Events emitted from Go reach Lua listeners and vice versa. Payloads
// cross the boundary through the Bridge conversion rules: Lua tables
// become []any or map[string]any, Go structs become tables keyed by
// their json tags.
//
// JSON payloads are handled by DecodePayload and EncodePayload, which
// are also exposed to scripts as flare.json_decode and
// flare.json_encode.
//
// A Manifest declares script-to-category bindings in TOML, so listener
// sets can be attached from configuration instead of code. See
// LoadManifest and Host.Attach.
//
// gopher-lua states are not goroutine-safe. All Host operations,
// including dispatcher emits that can reach Lua listeners, must happen
// on a single goroutine.
package script
