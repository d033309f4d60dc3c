// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import "code.hybscloud.com/atomix"

// serial allocates monotonically increasing 64-bit request ids.
// Each pipe instance carries its own counter.
type serial struct {
	counter atomix.Uint64
}

// next returns the next id. Ids start at 0 and are never reused
// within the lifetime of a pipe.
func (s *serial) next() uint64 {
	return s.counter.Add(1) - 1
}
