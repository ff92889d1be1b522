// Package codec turns profiles into compact URL-safe tokens and back.
package codec

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	apperrors "soulmatch/internal/errors"
	"soulmatch/internal/models"
)

// maxDecodedSize bounds inflated tokens so a crafted token cannot balloon in memory.
const maxDecodedSize = 64 << 10

var tokenEncoding = base64.RawURLEncoding

// Codec encodes and decodes soul hash tokens
type Codec struct {
	Now func() time.Time
}

// New returns a codec stamping profiles with the wall clock.
func New() *Codec {
	return &Codec{Now: time.Now}
}

// Encode stamps the profile with the current time and returns its token.
func (c *Codec) Encode(profile models.Profile) (string, error) {
	now := time.Now
	if c != nil && c.Now != nil {
		now = c.Now
	}
	profile.Timestamp = now().UnixMilli()
	if profile.Answers == nil {
		profile.Answers = []int{}
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("compress profile: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress profile: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress profile: %w", err)
	}
	return tokenEncoding.EncodeToString(buf.Bytes()), nil
}

// wireProfile mirrors the JSON shape loosely so the shape check can tell a
// missing field from a zero value.
type wireProfile struct {
	Version   *float64          `json:"version"`
	Name      *string           `json:"name"`
	Scenario  *string           `json:"type"`
	Answers   []json.RawMessage `json:"answers"`
	Timestamp *float64          `json:"timestamp"`
}

// Decode parses a token. Any failure yields a zero Profile and an error
// wrapping ErrDecodeFailure; a partially valid profile is never returned.
func (c *Codec) Decode(token string) (models.Profile, error) {
	compressed, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return models.Profile{}, invalid("bad alphabet", err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer zr.Close()
	raw, err := io.ReadAll(io.LimitReader(zr, maxDecodedSize+1))
	if err != nil {
		return models.Profile{}, invalid("decompress", err)
	}
	if len(raw) == 0 {
		return models.Profile{}, invalid("empty payload", nil)
	}
	if len(raw) > maxDecodedSize {
		return models.Profile{}, invalid("payload too large", nil)
	}

	var wire wireProfile
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.Profile{}, invalid("parse", err)
	}
	if wire.Version == nil {
		return models.Profile{}, invalid("version is not a number", nil)
	}
	if wire.Answers == nil {
		return models.Profile{}, invalid("answers is not an array", nil)
	}

	profile := models.Profile{
		Version: int(*wire.Version),
		Answers: make([]int, len(wire.Answers)),
	}
	if wire.Name != nil {
		profile.Name = *wire.Name
	}
	if wire.Scenario != nil {
		scenario, err := models.ParseScenario(*wire.Scenario)
		if err != nil {
			return models.Profile{}, invalid("scenario", err)
		}
		profile.Scenario = scenario
	}
	if wire.Timestamp != nil {
		profile.Timestamp = int64(*wire.Timestamp)
	}
	for i, rawAnswer := range wire.Answers {
		profile.Answers[i] = answerValue(rawAnswer)
	}

	return profile.Normalized(), nil
}

// answerValue reads one answer entry. Null, non-numeric and fractional entries
// become 0, which the scorer treats as missing.
func answerValue(raw json.RawMessage) int {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

func invalid(reason string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrDecodeFailure, reason, err)
	}
	return fmt.Errorf("%w: %s", apperrors.ErrDecodeFailure, reason)
}
