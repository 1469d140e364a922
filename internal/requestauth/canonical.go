// Package requestauth implements the HMAC request-authentication protocol:
// canonical message assembly, verification against a client's shared
// secret, and a gin middleware that wires the two into the HTTP pipeline.
package requestauth

// CanonicalMessage assembles the exact byte string HMAC is computed over:
// timestamp, uppercase HTTP method, request path, raw query string (no
// leading "?"), and request body, concatenated with no separators. Each
// field must already be in its final form — CanonicalMessage performs no
// normalization itself.
func CanonicalMessage(timestamp, method, path, query, body string) string {
	return timestamp + method + path + query + body
}
