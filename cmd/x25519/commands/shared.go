// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/hkdf"

	"github.com/ctcurve/curve25519"
)

func sharedCmd(opts *options) *cobra.Command {
	var info string

	cmd := &cobra.Command{
		Use:   "shared <private-key> <peer-public-key>",
		Short: "Compute the shared secret with a peer's public key",
		Long: `Compute the X25519 shared secret between a private key and a peer's
public key. A peer key of low order, which would make the secret all zeroes,
is rejected.

With --hkdf-info the raw secret is not printed. Instead a 32-byte key is
derived from it with HKDF-SHA256, using the given info string and no salt.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := opts.keyArg("private key", args[0])
			if err != nil {
				return err
			}
			defer wipe(priv)
			peer, err := opts.keyArg("peer public key", args[1])
			if err != nil {
				return err
			}

			secret, err := curve25519.X25519(priv, peer)
			if err != nil {
				return errors.Wrap(err, "computing shared secret")
			}
			defer wipe(secret)

			if !cmd.Flags().Changed("hkdf-info") {
				return opts.print(cmd, "", secret)
			}
			key, err := deriveKey(secret, info)
			if err != nil {
				return err
			}
			defer wipe(key)
			return opts.print(cmd, "", key)
		},
	}

	cmd.Flags().StringVar(&info, "hkdf-info", "", "derive a key with HKDF-SHA256 using this info string")
	return cmd
}

// deriveKey expands secret into a 32-byte key with HKDF-SHA256.
func deriveKey(secret []byte, info string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Wrap(err, "deriving key")
	}
	return key, nil
}
