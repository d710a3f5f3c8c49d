// Package versions tests version ordering and display names.
// Related: internal/versions/versions.go
// Tags: versions, sorting

package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLess(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		older string
		newer string
	}{
		"major":               {older: "2", newer: "3"},
		"alpha before beta":   {older: "3.5.0a1", newer: "3.5.0b1"},
		"alpha before rc":     {older: "3.5.0a1", newer: "3.5.0rc1"},
		"alpha before final":  {older: "3.5.0a1", newer: "3.5.0"},
		"beta numbers":        {older: "3.6.0b1", newer: "3.6.0b2"},
		"beta before rc":      {older: "3.6.0b1", newer: "3.6.0rc1"},
		"beta before final":   {older: "3.6.0b1", newer: "3.6.0"},
		"rc numbers":          {older: "3.7.0rc1", newer: "3.7.0rc2"},
		"rc before final":     {older: "3.7.0rc1", newer: "3.7.0"},
		"short version":       {older: "3.8", newer: "3.8.1"},
		"numeric not lexical": {older: "3.9.0b1", newer: "3.12.0a1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, Less(tt.older, tt.newer))
			assert.False(t, Less(tt.newer, tt.older))
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	got := []string{
		"3.7.0",
		"3.7.0a1",
		"next",
		"3.7.0a2",
		"3.7.0b1",
		"3.7.0b2",
		"3.7.0rc1",
		"3.7.0rc2",
		"3.9.0b1",
		"3.12.0a1",
	}
	Sort(got)

	assert.Equal(t, []string{
		"next",
		"3.12.0a1",
		"3.9.0b1",
		"3.7.0",
		"3.7.0rc2",
		"3.7.0rc1",
		"3.7.0b2",
		"3.7.0b1",
		"3.7.0a2",
		"3.7.0a1",
	}, got)
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"next":      "next",
		"3.12.0a1":  "3.12.0 alpha 1",
		"3.12.0b2":  "3.12.0 beta 2",
		"3.12.0rc2": "3.12.0 release candidate 2",
		"3.12.0":    "3.12.0 final",
		"3.12.1":    "3.12.1 final",
	}

	for version, want := range tests {
		t.Run(version, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, Printable(version))
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "000003.000012.000000.00000a.000001", Key("3.12.0a1"))
	assert.Equal(t, "000003.000008.000000.0000zz.000000", Key("3.8"))
	assert.Equal(t, "next", Key("next"))
}
