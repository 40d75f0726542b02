package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
)

type fakeIDTokens struct {
	token *fbauth.Token
	err   error
}

func (f fakeIDTokens) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	v := NewFirebaseVerifier(fakeIDTokens{token: &fbauth.Token{
		UID:    "fb-1",
		Claims: map[string]interface{}{"email": "a@b.c", "name": "Ann"},
	}})

	id, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "fb-1", Email: "a@b.c", DisplayName: "Ann"}, id)
}

func TestFirebaseVerifier_Errors(t *testing.T) {
	_, err := NewFirebaseVerifier(fakeIDTokens{err: errors.New("expired")}).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewFirebaseVerifier(fakeIDTokens{token: &fbauth.Token{}}).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInitializeFirebase_RequiresCredentials(t *testing.T) {
	_, err := InitializeFirebase(context.Background(), &config.AuthConfig{})
	assert.Error(t, err)
}
