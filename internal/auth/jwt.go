package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier validates bearer JWTs, either HS256 with a shared secret or
// RS256 against a JWKS.
type JWTVerifier struct {
	secret   []byte
	jwks     *keyfunc.JWKS
	audience string
	issuer   string
	parser   *jwt.Parser
	now      func() time.Time
}

func NewHS256Verifier(secret, audience, issuer string) *JWTVerifier {
	return &JWTVerifier{
		secret:   []byte(secret),
		audience: audience,
		issuer:   issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation()),
		now:      time.Now,
	}
}

func NewJWKSVerifier(jwks *keyfunc.JWKS, audience, issuer string) *JWTVerifier {
	return &JWTVerifier{
		jwks:     jwks,
		audience: audience,
		issuer:   issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}), jwt.WithoutClaimsValidation()),
		now:      time.Now,
	}
}

func (v *JWTVerifier) keyFor(t *jwt.Token) (any, error) {
	if v.jwks != nil {
		return v.jwks.Keyfunc(t)
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid signing method")
	}
	return v.secret, nil
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	parsed, err := v.parser.Parse(token, v.keyFor)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	// one minute of leeway for clock skew
	now := v.now()
	if !claims.VerifyExpiresAt(now.Add(-time.Minute).Unix(), true) {
		return Identity{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	if !claims.VerifyNotBefore(now.Add(time.Minute).Unix(), false) {
		return Identity{}, fmt.Errorf("%w: token not valid yet", ErrInvalidToken)
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return Identity{}, fmt.Errorf("%w: invalid audience", ErrInvalidToken)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return Identity{}, fmt.Errorf("%w: invalid issuer", ErrInvalidToken)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	id := Identity{Subject: sub}
	id.Email, _ = claims["email"].(string)
	id.DisplayName, _ = claims["name"].(string)
	return id, nil
}
