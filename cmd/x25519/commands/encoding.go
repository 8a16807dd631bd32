// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

const (
	encodingHex    = "hex"
	encodingBase64 = "base64"
)

type codec struct {
	encode func([]byte) string
	decode func(string) ([]byte, error)
}

var codecs = map[string]codec{
	encodingHex: {
		encode: hex.EncodeToString,
		decode: func(s string) ([]byte, error) {
			return hex.DecodeString(strings.TrimSpace(s))
		},
	},
	encodingBase64: {
		encode: base64.StdEncoding.EncodeToString,
		decode: func(s string) ([]byte, error) {
			return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		},
	},
}

func codecFor(name string) (codec, error) {
	c, ok := codecs[name]
	if !ok {
		return codec{}, errors.Errorf("unknown encoding %q (want %s or %s)", name, encodingHex, encodingBase64)
	}
	return c, nil
}

// wipe zeroes b once a secret in it is no longer needed.
func wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
