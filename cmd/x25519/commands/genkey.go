// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ctcurve/curve25519"
)

func genkeyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "genkey",
		Short: "Generate a private key and print it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, pub, err := curve25519.GenerateKey(opts.random)
			if err != nil {
				return errors.Wrap(err, "generating key")
			}
			defer wipe(priv)

			if err := opts.print(cmd, "private", priv); err != nil {
				return err
			}
			return opts.print(cmd, "public", pub)
		},
	}
}
