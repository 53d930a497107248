package id

import "github.com/segmentio/ksuid"

// GenerateIDWithPrefix returns prefix followed by a 27-character KSUID.
// Used for opaque identifiers such as JWT ids, e.g. tok_2ArTLVPddDx8vZk7CqEbiYp1.
func GenerateIDWithPrefix(prefix string) string {
	return prefix + ksuid.New().String()
}
