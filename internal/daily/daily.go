// internal/daily/daily.go
//
// Deterministic daily ladder.
// Every caller with the same salt sees the same start/target pair for a UTC date:
// HMAC-SHA256(salt, YYYY-MM-DD) seeds a PCG generator, which draws a reachable
// medium pair from the shared graph.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/ladder"
)

// Difficulty is the band daily pairs are drawn from.
const Difficulty = game.Medium

// Challenge is the pair assigned to a date.
type Challenge struct {
	Date   string `json:"date"`
	Start  string `json:"start"`
	Target string `json:"target"`
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives two PCG seeds from HMAC(salt, date key).
func Seed(date time.Time, salt string) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// For returns the challenge for date. The graph's medium words are read in
// sorted order, so the result depends only on the lexicon, salt and date.
func For(g *ladder.Graph, date time.Time, salt string) (Challenge, error) {
	s1, s2 := Seed(date, salt)
	rng := rand.New(rand.NewPCG(s1, s2))
	start, target, err := game.PickPair(g, Difficulty, rng, game.PairOptions{RequireReachable: true})
	if err != nil {
		return Challenge{}, err
	}
	return Challenge{Date: DateKey(date), Start: start, Target: target}, nil
}
