package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "token_use" claim. The claim is verified on
// every parse so a refresh token can never pass an access-token check, even
// when both kinds share a sign key (the refresh key falls back to the
// access key when unconfigured).
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// SessionClaims is the claim set embedded in every DevDesk session token.
// It extends the registered JWT claims with the token kind.
type SessionClaims struct {
	jwt.RegisteredClaims

	// TokenUse distinguishes access tokens from refresh tokens.
	TokenUse string `json:"token_use"`
}

// Token wraps a parsed or freshly issued session JWT with convenience
// accessors used by the authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in cookies.
//
// UserID is a cached copy of the "sub" claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON because only the compact string form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	// SessionClaims provides access to the standard claim set plus the
	// token kind.
	SessionClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair bundles the access and refresh tokens issued together at
// login, verification, and every rotation. Both are replaced as a unit;
// the previous refresh value becomes invalid the moment the pair is
// persisted.
type TokenPair struct {
	Access  Token
	Refresh Token
}
