// Package dictsrv implements a DICT protocol (RFC 2229) dictionary
// server as an embeddable library.
//
// A Service loads dictionary databases from disk, registers matching
// strategies (built-in and Lua-defined), and serves DEFINE, MATCH, SHOW
// and related commands to any RFC 2229 client over TCP.
//
// Basic usage:
//
//	svc, err := dictsrv.New(
//		dictsrv.WithListenAddr(":2628"),
//		dictsrv.WithDictDir("/usr/share/dictd"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer svc.Close()
//
//	if err := svc.Start(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// The library supports:
//
//   - dict.org .index/.dict databases and a JSON database format
//   - Built-in exact, prefix, suffix, substring and glob strategies
//   - Operator-defined strategies written in Lua
//   - Hot reload of dictionary data with atomic registry swaps
//   - One independent session per connection, shared-nothing between
//     sessions beyond the read-only registry
package dictsrv
