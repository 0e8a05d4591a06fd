package paseto

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
)

func testSecret(b byte) string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return base64.URLEncoding.EncodeToString(key)
}

func TestGenerateAndValidateToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSecret('k'), time.Hour)
	require.NoError(t, err)

	user := &models.User{ID: primitive.NewObjectID(), Name: "Dewi", Email: "dewi@example.com", Role: models.RoleGuard}

	token, err := maker.GenerateToken(user)
	require.NoError(t, err)
	assert.Contains(t, token, "v2.local.")

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "dewi@example.com", claims.Email)
	assert.Equal(t, "Dewi", claims.Name)
	assert.Equal(t, models.RoleGuard, claims.Role)
}

func TestValidateTokenWithWrongKey(t *testing.T) {
	issuer, err := NewPasetoMaker(testSecret('a'), time.Hour)
	require.NoError(t, err)
	verifier, err := NewPasetoMaker(testSecret('b'), time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateToken(&models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenTampered(t *testing.T) {
	maker, err := NewPasetoMaker(testSecret('a'), time.Hour)
	require.NoError(t, err)

	_, err = maker.ValidateToken("v2.local.bm90LWEtcmVhbC10b2tlbg")
	assert.Error(t, err)
}

func TestNewPasetoMakerRejectsShortKey(t *testing.T) {
	_, err := NewPasetoMaker(base64.StdEncoding.EncodeToString([]byte("too-short")), time.Hour)
	assert.Error(t, err)
}
