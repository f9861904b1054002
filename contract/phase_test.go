package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseAt(t *testing.T) {
	cases := []struct {
		t    uint64
		want Phase
	}{
		{0, PhaseCommit},
		{4, PhaseCommit},
		{5, PhaseReveal},
		{6, PhaseClosed},
		{7, PhaseClosed},
		{1 << 40, PhaseClosed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PhaseAt(c.t, 5, 6), "height %d", c.t)
	}
}

func TestPhaseNeverReopens(t *testing.T) {
	prev := PhaseCommit
	for h := uint64(0); h < 40; h++ {
		p := PhaseAt(h, 10, 20)
		assert.GreaterOrEqual(t, p, prev, "height %d", h)
		prev = p
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "commit", PhaseCommit.String())
	assert.Equal(t, "reveal", PhaseReveal.String())
	assert.Equal(t, "closed", PhaseClosed.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
