// Package lua lets server operators extend the MATCH strategy set with
// Lua-defined predicates, without rebuilding the server.
//
// A strategy script defines a global match(headword, query) function
// returning a boolean, and optionally a description string:
//
//	description = "match headwords of the same length"
//	function match(headword, query)
//	  return #headword == #query
//	end
//
// Scripts are compiled once at startup; each strategy runs in its own
// Lua state, serialized by a mutex so concurrent sessions can share it.
package lua
