// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// options holds the state shared by all subcommands of one root command.
type options struct {
	encoding string
	random   io.Reader
}

// Execute runs the x25519 command line with os.Args.
func Execute() error {
	return newRootCmd(rand.Reader).Execute()
}

func newRootCmd(random io.Reader) *cobra.Command {
	opts := &options{random: random}

	root := &cobra.Command{
		Use:          "x25519",
		Short:        "X25519 key generation and key agreement (RFC 7748)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := codecFor(opts.encoding)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&opts.encoding, "encoding", "e", encodingHex,
		"key encoding for input and output: hex or base64")

	root.AddCommand(genkeyCmd(opts), pubkeyCmd(opts), sharedCmd(opts))
	return root
}

// keyArg decodes the positional argument name as a 32-byte key.
func (o *options) keyArg(name, arg string) ([]byte, error) {
	c, err := codecFor(o.encoding)
	if err != nil {
		return nil, err
	}
	key, err := c.decode(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	if len(key) != 32 {
		wipe(key)
		return nil, errors.Errorf("%s must be 32 bytes, got %d", name, len(key))
	}
	return key, nil
}

func (o *options) print(cmd *cobra.Command, label string, b []byte) error {
	c, err := codecFor(o.encoding)
	if err != nil {
		return err
	}
	if label != "" {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, c.encode(b))
	} else {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), c.encode(b))
	}
	return err
}
