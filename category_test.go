package spritepack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategory(t *testing.T) {
	tables := []struct {
		folder, category string
	}{
		{"01-body", "body"},
		{"1_head", "head"},
		{"2 accessories", "accessories"},
		{"10-glasses", "glasses"},
		{"body", "body"},
		{"123", "123"},
		{"-", "-"},
	}

	for _, table := range tables {
		require.Equal(t, table.category, Category(table.folder), table.folder)
	}
}
