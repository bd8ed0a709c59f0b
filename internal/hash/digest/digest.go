// Package digest defines the common shape every checksum algorithm's
// result type satisfies, standing in for quicker_sfv::Digest's
// type-erased Concept/Model wrapper. Go interfaces already give value
// types polymorphic storage and comparison, so no wrapper type is
// needed here: a Digest is simply anything that can format and
// compare itself.
package digest

// Digest is a checksum result. Two Digests of different concrete
// types are never equal, mirroring the original's same-dynamic-type
// requirement.
type Digest interface {
	// String returns the digest's canonical text form. Two Digests
	// that are Equal must return the same String.
	String() string
	// Equal reports whether other is a Digest of the same concrete
	// type holding the same value.
	Equal(other Digest) bool
}
