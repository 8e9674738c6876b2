package common

import "unsafe"

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using
// unsafe. The returned slice aliases the struct's memory and has length equal
// to the struct's size; it is only valid while the struct is alive. Used to
// upload plain float struct data (matrices, vectors) to GPU buffers without
// a copy.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: the struct's memory as bytes
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
