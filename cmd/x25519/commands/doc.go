// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands defines the x25519 CLI.
//
// Commands
//
//   - genkey   Generate a private key and print it with its public key
//   - pubkey   Print the public key of a private key
//   - shared   Compute the shared secret with a peer's public key
//
// Keys are read and printed in the encoding selected with --encoding (hex by
// default, or base64). Output is written to the command's output stream.
package commands
