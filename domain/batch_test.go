package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetStateKeepsExactlyOneLifecycleFlag(t *testing.T) {
	var b Batch
	for _, state := range []string{BatchStateProcessing, BatchStateFailed, BatchStateCompleted, BatchStateIdle} {
		b.SetState(state)
		assert.Equal(t, state, b.State())

		set := 0
		for _, f := range []bool{b.IsIdle, b.IsProcessing, b.IsCompleted, b.IsFailed} {
			if f {
				set++
			}
		}
		assert.Equal(t, 1, set, "state %s", state)
	}
}

func TestProfileNormalizeDefaults(t *testing.T) {
	p := CandidateProfile{
		PersonalInfo: PersonalInfo{ProfessionalJob: -3},
		Experience:   []Experience{{Years: "2020-2022"}},
	}
	p.Normalize()

	assert.Equal(t, 0, p.PersonalInfo.ProfessionalJob)
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Experience[0].Details.Responsibilities)
	assert.NotNil(t, p.Skills.Technical)
	assert.NotNil(t, p.Skills.Soft)
	assert.NotNil(t, p.Skills.Tools)
}
