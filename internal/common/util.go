package common

// WipeByteArray overwrites the contents of b with zeros. Used for tokens read
// from the terminal once they have been copied into the metadata store.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
