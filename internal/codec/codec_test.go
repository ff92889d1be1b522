package codec

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	apperrors "soulmatch/internal/errors"
	"soulmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCodec() *Codec {
	return &Codec{Now: func() time.Time { return time.UnixMilli(1700000000000) }}
}

// rawToken compresses arbitrary JSON the same way Encode does.
func rawToken(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	c := fixedCodec()
	profiles := []models.Profile{
		{Version: 2, Name: "小明", Scenario: models.ScenarioCouple, Answers: []int{1, 2, 3, 4, 5}},
		{Version: 2, Scenario: models.ScenarioFriend, Answers: []int{5, 5, 5, 5, 1, 1, 1, 1}},
		{Version: 1, Name: "Ann", Scenario: models.ScenarioCouple, Answers: []int{}},
	}
	for _, p := range profiles {
		token, err := c.Encode(p)
		require.NoError(t, err)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		got, err := c.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Scenario, got.Scenario)
		assert.Equal(t, p.Answers, got.Answers)
		assert.Equal(t, p.Version, got.Version)
		assert.Equal(t, int64(1700000000000), got.Timestamp)
	}
}

func TestEncodeIsDeterministicForFixedClock(t *testing.T) {
	c := fixedCodec()
	p := models.Profile{Version: 2, Name: "A", Answers: []int{3, 3, 3}}
	first, err := c.Encode(p)
	require.NoError(t, err)
	second, err := c.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeAppliesLegacyScenario(t *testing.T) {
	token := rawToken(t, `{"version":1,"name":"old","answers":[1,2,3],"timestamp":1}`)
	got, err := New().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, models.ScenarioCouple, got.Scenario)
}

func TestDecodeMissingAnswersBecomeZero(t *testing.T) {
	token := rawToken(t, `{"version":2,"answers":[1,null,"x",2.5,5]}`)
	got, err := New().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0, 0, 5}, got.Answers)
}

func TestDecodeRejectsTamperedTokens(t *testing.T) {
	valid, err := fixedCodec().Encode(models.Profile{Version: 2, Name: "B", Answers: []int{1, 2, 3, 4, 5, 1, 2, 3}})
	require.NoError(t, err)

	cases := map[string]string{
		"empty":            "",
		"bad alphabet":     "not a token!!",
		"plain base64":     base64.RawURLEncoding.EncodeToString([]byte("hello world")),
		"truncated":        valid[:len(valid)/2],
		"not json":         rawToken(t, "definitely not json"),
		"json array":       rawToken(t, `[1,2,3]`),
		"json null":        rawToken(t, `null`),
		"missing version":  rawToken(t, `{"answers":[1,2]}`),
		"string version":   rawToken(t, `{"version":"2","answers":[1,2]}`),
		"missing answers":  rawToken(t, `{"version":2}`),
		"null answers":     rawToken(t, `{"version":2,"answers":null}`),
		"object answers":   rawToken(t, `{"version":2,"answers":{"0":1}}`),
		"unknown scenario": rawToken(t, `{"version":2,"type":"enemy","answers":[1]}`),
		"oversized":        rawToken(t, `{"version":2,"name":"`+strings.Repeat("a", maxDecodedSize)+`","answers":[]}`),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := New().Decode(token)
			require.ErrorIs(t, err, apperrors.ErrDecodeFailure)
			assert.Equal(t, models.Profile{}, got)
		})
	}
}
