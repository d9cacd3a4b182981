// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// lenSize is the width, in bytes, of the little-endian payload-length
// prefix. It is always 8.
const lenSize = 8

// paddingLen returns the number of zero bytes needed to round n up to the
// next multiple of lenSize. It is zero when n is already a multiple of 8.
func paddingLen(n uint64) uint64 {
	return (lenSize - (n % lenSize)) % lenSize
}
