package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhotoType(t *testing.T) {
	assert.Equal(t, PhotoTypeUser, ParsePhotoType(0))
	assert.Equal(t, PhotoTypeEmirates, ParsePhotoType(1))
	assert.Equal(t, PhotoTypePassport, ParsePhotoType(2))
	assert.Equal(t, PhotoTypeUser, ParsePhotoType(7))
	assert.Equal(t, PhotoTypeUser, ParsePhotoType(-1))
}

func TestPhotoType_DisplayName(t *testing.T) {
	assert.Equal(t, "User Photo", PhotoTypeUser.DisplayName())
	assert.Equal(t, "Emirates Photo", PhotoTypeEmirates.DisplayName())
	assert.Equal(t, "Passport Photo", PhotoTypePassport.DisplayName())
}

func TestUser_Normalized(t *testing.T) {
	var u User
	n := u.Normalized()
	require.NotNil(t, n.Photos)
	assert.Empty(t, n.Photos)

	u.Photos = []Photo{{ID: "p-1"}}
	n = u.Normalized()
	n.Photos[0].ID = "changed"
	assert.Equal(t, "p-1", u.Photos[0].ID, "normalized copy must not alias")
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}

func TestUser_JSONKeys(t *testing.T) {
	u := User{ID: "u-1", FirstName: "Ada", CountryCode: "+971", IsVerified: true,
		Photos: []Photo{{ID: "p", Type: PhotoTypePassport, MimeType: "image/png", UploadedAt: "2024-01-01T00:00:00Z"}}}
	b, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"id", "first_name", "last_name", "email", "country_code", "phone",
		"is_verified", "is_active", "photos", "created_at", "updated_at"} {
		assert.Contains(t, m, k)
	}
	photo := m["photos"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(2), photo["type"])
	assert.Equal(t, "image/png", photo["mime_type"])
	assert.Equal(t, "2024-01-01T00:00:00Z", photo["uploaded_at"])
}
