package affinity

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unsafe"
)

// HandleSize is the width of a native window handle in bytes.
const HandleSize = int(unsafe.Sizeof(uintptr(0)))

// Handle is a borrowed native window handle (HWND). It is never created,
// tracked or released here.
type Handle uintptr

// DecodeHandle reads a handle from a buffer in native byte order, as handed
// out by hosts that expose window handles as raw bytes.
func DecodeHandle(b []byte) (Handle, error) {
	if len(b) != HandleSize {
		return 0, &ArgumentError{
			Index:  0,
			Reason: fmt.Sprintf("handle must be %d bytes, got %d", HandleSize, len(b)),
		}
	}
	if HandleSize == 8 {
		return Handle(binary.NativeEndian.Uint64(b)), nil
	}
	return Handle(binary.NativeEndian.Uint32(b)), nil
}

// Bytes encodes h the way DecodeHandle expects it.
func (h Handle) Bytes() []byte {
	b := make([]byte, HandleSize)
	if HandleSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(h))
	} else {
		binary.NativeEndian.PutUint32(b, uint32(h))
	}
	return b
}

func (h Handle) String() string {
	return fmt.Sprintf("%#X", uintptr(h))
}

// ParseHandle accepts decimal or 0x prefixed hexadecimal handle values.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ArgumentError{Index: 0, Reason: "empty handle"}
	}
	v, err := strconv.ParseUint(strings.ToLower(s), 0, strconv.IntSize)
	if err != nil {
		return 0, &ArgumentError{Index: 0, Reason: fmt.Sprintf("bad handle %q", s)}
	}
	return Handle(v), nil
}
