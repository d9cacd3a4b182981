// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package nar emits the NAR (Nix ARchive) serialization of a tree of
// filesystem nodes: a deterministic, depth-first pre-order stream of tagged
// tokens, each token itself one wire.Writer frame.
package nar
