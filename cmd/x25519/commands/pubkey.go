// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ctcurve/curve25519"
)

func pubkeyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey <private-key>",
		Short: "Print the public key of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := opts.keyArg("private key", args[0])
			if err != nil {
				return err
			}
			defer wipe(priv)

			pub, err := curve25519.X25519(priv, curve25519.Basepoint)
			if err != nil {
				return errors.Wrap(err, "computing public key")
			}
			return opts.print(cmd, "", pub)
		},
	}
}
