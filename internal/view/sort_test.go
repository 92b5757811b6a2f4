package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortNextCycles(t *testing.T) {
	var s Sort

	s = s.Next("city")
	assert.Equal(t, Sort{Column: "city", Direction: DirectionAsc}, s)

	s = s.Next("city")
	assert.Equal(t, Sort{Column: "city", Direction: DirectionDesc}, s)

	s = s.Next("city")
	assert.Equal(t, Sort{}, s)
}

func TestSortNextSwitchingColumnResetsToAsc(t *testing.T) {
	s := Sort{Column: "city", Direction: DirectionDesc}
	s = s.Next("email")
	assert.Equal(t, Sort{Column: "email", Direction: DirectionAsc}, s)
}

func TestSortChildRows(t *testing.T) {
	rows := []ChildRow{
		{ChildFirstName: "Zoe", City: "München"},
		{ChildFirstName: "Ärmin", City: "Augsburg"},
		{ChildFirstName: "Ben", City: "Berlin"},
	}

	t.Run("no direction keeps insertion order", func(t *testing.T) {
		got := SortChildRows(rows, Sort{Column: "child_first_name", Direction: DirectionNone})
		assert.Equal(t, rows, got)
	})

	t.Run("ascending with german collation", func(t *testing.T) {
		got := SortChildRows(rows, Sort{Column: "child_first_name", Direction: DirectionAsc})
		require.Len(t, got, 3)
		// Ä collates with A, not after Z.
		assert.Equal(t, "Ärmin", got[0].ChildFirstName)
		assert.Equal(t, "Ben", got[1].ChildFirstName)
		assert.Equal(t, "Zoe", got[2].ChildFirstName)
	})

	t.Run("descending reverses", func(t *testing.T) {
		got := SortChildRows(rows, Sort{Column: "city", Direction: DirectionDesc})
		assert.Equal(t, "München", got[0].City)
		assert.Equal(t, "Augsburg", got[2].City)
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := append([]ChildRow(nil), rows...)
		SortChildRows(rows, Sort{Column: "city", Direction: DirectionAsc})
		assert.Equal(t, before, rows)
	})
}

func TestSortChildRowsThreeClicksRestoreOrder(t *testing.T) {
	rows := []ChildRow{
		{ChildFirstName: "Zoe"},
		{ChildFirstName: "Ben"},
	}

	var s Sort
	s = s.Next("child_first_name")
	s = s.Next("child_first_name")
	s = s.Next("child_first_name")

	got := SortChildRows(rows, s)
	assert.Equal(t, rows, got)
}

func TestSortChildRowsNilContractEnd(t *testing.T) {
	end := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	rows := []ChildRow{
		{ChildFirstName: "A", ContractEnd: &end},
		{ChildFirstName: "B"},
	}

	got := SortChildRows(rows, Sort{Column: "contract_end", Direction: DirectionAsc})
	// Missing end sorts as empty string, ahead of any date.
	assert.Equal(t, "B", got[0].ChildFirstName)
}
