package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/draftgate/internal/model"
)

func eligible() model.DraftCheckResult {
	return model.DraftCheckResult{
		HasSource:                true,
		IndependentReliableCount: 2,
		NotabilityPass:           true,
		HasLead:                  true,
		HasHeader:                true,
		HasCite:                  true,
		CopyvioLow:               true,
		MainEligible:             true,
		TextLength:               150,
	}
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		in   string
		want model.Destination
		err  bool
	}{
		{"draft", model.DestinationDraft, false},
		{" Mainspace ", model.DestinationMainspace, false},
		{"MAINSPACE", model.DestinationMainspace, false},
		{"", "", true},
		{"userspace", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDestination(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrUnknownDestination, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDecide_DraftNeedsText(t *testing.T) {
	d, err := Decide(model.DraftCheckResult{}, model.DestinationDraft)
	require.NoError(t, err)
	assert.False(t, d.Enabled, "empty draft cannot be published")
	assert.Equal(t, LabelDraft, d.Label)
	assert.Equal(t, []string{"empty_draft"}, d.Blockers)

	// Drafts ignore every other check
	d, err = Decide(model.DraftCheckResult{TextLength: 1, PromoHit: true, TitleClash: true}, model.DestinationDraft)
	require.NoError(t, err)
	assert.True(t, d.Enabled)
	assert.Empty(t, d.Blockers)
}

func TestDecide_MainspaceFollowsEligibility(t *testing.T) {
	d, err := Decide(eligible(), model.DestinationMainspace)
	require.NoError(t, err)
	assert.True(t, d.Enabled)
	assert.Equal(t, LabelMainspace, d.Label)
	assert.Empty(t, d.Blockers)

	r := eligible()
	r.PromoHit = true
	r.HasLead = false
	r.MainEligible = false

	d, err = Decide(r, model.DestinationMainspace)
	require.NoError(t, err)
	assert.False(t, d.Enabled)
	assert.Equal(t, []string{"lead", "promotional_language"}, d.Blockers)
}

func TestDecide_UnknownDestination(t *testing.T) {
	_, err := Decide(eligible(), model.Destination("userspace"))
	require.ErrorIs(t, err, ErrUnknownDestination)
}
