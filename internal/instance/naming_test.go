package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{DefaultName, "a", "mccormick", "boyd-kerr", "tree-2024", "0"}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.NoError(t, ValidateName(name))
		})
	}

	invalid := []struct {
		label string
		input string
		msg   string
	}{
		{"empty", "", "cannot be empty"},
		{"uppercase", "McCormick", "must be lowercase"},
		{"leading hyphen", "-family", "not at start/end"},
		{"trailing hyphen", "family-", "not at start/end"},
		{"underscore", "family_tree", "must be lowercase alphanumeric"},
		{"space", "family tree", "must be lowercase alphanumeric"},
		{"key separator", "family:lineage", "must be lowercase alphanumeric"},
		{"glob star", "fam*", "must be lowercase alphanumeric"},
		{"glob class", "fam[ab]", "must be lowercase alphanumeric"},
		{"glob question mark", "fam?", "must be lowercase alphanumeric"},
	}
	for _, tc := range invalid {
		t.Run(tc.label, func(t *testing.T) {
			err := ValidateName(tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestValidateName_Length(t *testing.T) {
	assert.NoError(t, ValidateName(strings.Repeat("a", MaxNameLength)))

	err := ValidateName(strings.Repeat("a", MaxNameLength+1))
	require.Error(t, err)
	assert.Equal(t, "instance name too long: 64 characters (max: 63)", err.Error())
}
