package pollview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

func TestWriteGrid(t *testing.T) {
	poll := datePoll()
	alice := participant(poll, "Alice", "u1", domain.VoteYes, domain.VoteNo, domain.VoteIfNeedBe)
	bob := participant(poll, "Bob", "u2", domain.VoteYes, domain.VoteUnset, domain.VoteYes)
	d, err := Build(poll, []domain.Participant{alice, bob}, Viewer{}, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, d))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Alice", "✓", "✗", "~"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Bob", "✓", "✓"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"yes", "2", "0", "1"}, strings.Fields(lines[3]))
}

func TestWriteGridBlanksUnknownVotes(t *testing.T) {
	poll := datePoll()
	d, err := Build(poll, nil, Viewer{}, Options{})
	require.NoError(t, err)
	d.Participants = []ParticipantInfo{{Name: "Eve", Votes: []domain.VoteType{"maybe", domain.VoteYes, domain.VoteNo}}}

	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, d))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{"Eve", "✓", "✗"}, strings.Fields(lines[1]))
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "2024-03-01", OptionView{Type: domain.ValueTypeDate, Date: "2024-03-01"}.Label())
	assert.Equal(t, "2024-03-01T09:00-10:00",
		OptionView{Type: domain.ValueTypeTime, Start: "2024-03-01T09:00", End: "2024-03-01T10:00"}.Label())
	assert.Equal(t, "2024-03-01T23:00-2024-03-02T01:00",
		OptionView{Type: domain.ValueTypeTime, Start: "2024-03-01T23:00", End: "2024-03-02T01:00"}.Label())
}
