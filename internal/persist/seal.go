package persist

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// ErrSecretTooLong is returned for a score secret longer than a BLAKE2b key.
var ErrSecretTooLong = errors.New("score secret longer than 64 bytes")

// Seal returns a keyed BLAKE2b-256 digest over rec's summary fields, so a
// record edited in the database no longer verifies. Timestamps are taken at
// microsecond precision, which is what the database keeps. KillsBy and Seal
// itself are not covered.
func Seal(secret []byte, rec RunRecord) ([]byte, error) {
	if len(secret) > blake2b.Size {
		return nil, ErrSecretTooLong
	}
	h, err := blake2b.New256(secret)
	if err != nil {
		return nil, fmt.Errorf("seal run %s: %w", rec.ID, err)
	}
	var buf [8]byte
	putInt := func(v int64) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	putString := func(s string) {
		putInt(int64(len(s)))
		h.Write([]byte(s))
	}

	h.Write(rec.ID[:])
	putString(rec.Game)
	putInt(int64(rec.Score))
	putInt(int64(rec.Kills))
	putInt(int64(rec.Waves))
	putInt(int64(rec.Ticks))
	putString(rec.Reason)
	putInt(rec.StartedAt.UnixMicro())
	putInt(rec.EndedAt.UnixMicro())
	return h.Sum(nil), nil
}

// Verify reports whether rec carries the seal Seal would compute for it.
func Verify(secret []byte, rec RunRecord) bool {
	want, err := Seal(secret, rec)
	if err != nil || len(rec.Seal) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(want, rec.Seal) == 1
}

func (rec RunRecord) logFields() []zap.Field {
	return []zap.Field{
		zap.Stringer("run", rec.ID),
		zap.Int("score", rec.Score),
		zap.Int("kills", rec.Kills),
		zap.Int("waves", rec.Waves),
		zap.Uint64("ticks", rec.Ticks),
		zap.String("reason", rec.Reason),
	}
}
