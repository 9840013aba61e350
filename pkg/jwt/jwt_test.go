package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/Leavend/SMI-HIMPA-Client/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "budi", "ADMIN", "smi-test", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.False(t, claims.Expired(time.Now()))
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "budi", "ADMIN", "smi-test", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestDecode_SinSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-2", "siti", "BORROWER", "smi-test", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "BORROWER", claims.Role)
	assert.True(t, claims.Expired(time.Now().Add(time.Hour)))
}

func TestDecode_TokenBasura(t *testing.T) {
	_, err := pkgjwt.Decode("no-es-un-jwt")
	assert.Error(t, err)
}
