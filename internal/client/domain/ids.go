package domain

import "github.com/google/uuid"

// clientIdNamespace is the fixed UUIDv5 namespace for deriving a ClientId
// from a client name. Never changes; changing it would silently re-derive
// every existing client's id.
var clientIdNamespace = uuid.MustParse("0540c0d2-29ab-4a7e-991e-45ece00d921a")

// ClientId uniquely and deterministically identifies a client. It is a pure
// function of the client's name — renaming a client is unsupported and
// would silently produce a different id.
type ClientId uuid.UUID

// NewClientId derives the deterministic id for a given client name.
func NewClientId(name string) ClientId {
	return ClientId(uuid.NewSHA1(clientIdNamespace, []byte(name)))
}

// String renders the id in canonical UUID form.
func (c ClientId) String() string {
	return uuid.UUID(c).String()
}

// ApiKey is the public identifier a client presents on every authenticated
// request. It is a random UUIDv4, generated once at client creation and
// never changed.
type ApiKey uuid.UUID

// NewApiKey draws a fresh random API key.
func NewApiKey() ApiKey {
	return ApiKey(uuid.New())
}

// ApiKeyFromUUID wraps an already-parsed UUID as an ApiKey, e.g. one
// decoded from the x-api-key request header.
func ApiKeyFromUUID(id uuid.UUID) ApiKey {
	return ApiKey(id)
}

// UUID returns the underlying UUID value.
func (a ApiKey) UUID() uuid.UUID {
	return uuid.UUID(a)
}

// String renders the full canonical UUID form. Used only where the raw
// value must round-trip (storage); display paths go through Mask.
func (a ApiKey) String() string {
	return uuid.UUID(a).String()
}

// Mask implements secrecy/domain.Masker: the first three characters of the
// canonical UUID form plus "***".
func (a ApiKey) Mask() string {
	s := uuid.UUID(a).String()
	if len(s) < 3 {
		return s + "***"
	}
	return s[:3] + "***"
}

// MarshalText renders the full canonical UUID form. Defined so that
// encoding/json's default marshaling of an ApiKey (e.g. inside
// Masked.MarshalFull) produces a UUID string rather than a byte array.
func (a ApiKey) MarshalText() ([]byte, error) {
	return uuid.UUID(a).MarshalText()
}

// UnmarshalText parses the canonical UUID form back into an ApiKey.
func (a *ApiKey) UnmarshalText(text []byte) error {
	var id uuid.UUID
	if err := id.UnmarshalText(text); err != nil {
		return err
	}
	*a = ApiKey(id)
	return nil
}
