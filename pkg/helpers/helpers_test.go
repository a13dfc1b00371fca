package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, aexp, err := m.GenerateAccessToken("u-1", "s-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), aexp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "s-1", claims.SessionID)
	assert.Equal(t, "luxor-authd", claims.Issuer)

	refresh, _, err := m.GenerateRefreshToken("u-1", "s-1")
	require.NoError(t, err)
	_, err = m.ParseRefreshToken(refresh)
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not verify with the refresh secret")
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	tok, _, err := m.GenerateAccessToken("u-1", "s-1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("Test123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Test123!", hash)
	assert.True(t, CompareHashAndPassword(hash, "Test123!"))
	assert.False(t, CompareHashAndPassword(hash, "test123!"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "Test123!"))
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "luxor", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	l.WithField("user_id", "u-1").Info("signed in")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "signed in", entry["msg"])
	assert.Equal(t, "u-1", entry["user_id"])

	dev := NewLoggerTo(&bytes.Buffer{}, "luxor", "development")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
}

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	defer func() { _ = rdb.Close() }()
	assert.NoError(t, PingRedis(context.Background(), rdb))

	mr.Close()
	assert.Error(t, PingRedis(context.Background(), rdb))
}
