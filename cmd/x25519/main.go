// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command x25519 generates X25519 key pairs and computes shared secrets.
package main

import (
	"os"

	"github.com/ctcurve/curve25519/cmd/x25519/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
