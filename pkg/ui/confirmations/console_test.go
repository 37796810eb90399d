package confirmations

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			d := NewConsoleDialog(strings.NewReader(tt.input), &out)

			got, err := d.Confirm("Delete everything?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete everything? [y/N]: ", out.String())
		})
	}
}

func TestChoose(t *testing.T) {
	options := []string{"first", "second", "third"}

	tests := []struct {
		name    string
		input   string
		wantIdx int
		wantOK  bool
	}{
		{"pick first", "1\n", 0, true},
		{"pick last", "3\n", 2, true},
		{"quit", "q\n", 0, false},
		{"out of range", "4\n", 0, false},
		{"zero", "0\n", 0, false},
		{"not a number", "two\n", 0, false},
		{"no input", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			d := NewConsoleDialog(strings.NewReader(tt.input), &out)

			idx, ok, err := d.Choose("Pick one", options)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Contains(t, out.String(), "(2): second")
			assert.Contains(t, out.String(), "Enter 1-3 or Q to quit")
		})
	}
}

func TestChooseSingleOption(t *testing.T) {
	var out bytes.Buffer
	d := NewConsoleDialog(strings.NewReader("1\n"), &out)

	idx, ok, err := d.Choose("", []string{"only"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Contains(t, out.String(), "Enter 1 or Q to quit")
}

func TestChooseNoOptions(t *testing.T) {
	var out bytes.Buffer
	d := NewConsoleDialog(strings.NewReader("1\n"), &out)

	_, ok, err := d.Choose("Pick", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestPresentConfirmations(t *testing.T) {
	var out bytes.Buffer
	d := NewConsoleDialog(strings.NewReader("y\n\nn\n"), &out)

	responses, err := d.PresentConfirmations([]types.ConfirmationRequest{
		{ID: "links", Title: "Delete links", Items: []string{"/a", "/b"}},
		{ID: "defaults-yes", Title: "Delete defaults", Default: true},
		{ID: "declined", Title: "Delete more", Description: "Cannot be undone"},
	})
	require.NoError(t, err)

	assert.Equal(t, []types.ConfirmationResponse{
		{ID: "links", Approved: true},
		{ID: "defaults-yes", Approved: true},
		{ID: "declined", Approved: false},
	}, responses)
	assert.Contains(t, out.String(), "  - /a")
	assert.Contains(t, out.String(), "[Y/n]")
	assert.Contains(t, out.String(), "Cannot be undone")
}
