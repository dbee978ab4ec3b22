package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mondrian/pkg/mondrian"
)

func testBrowseLayout() mondrian.Layout {
	return mondrian.Layout{
		Blocks: []mondrian.Block{
			{ID: "WAG000001", Name: "Small change", FoldChange: 0.2, PValue: 0.001, Category: mondrian.Neutral},
			{ID: "WAG000002", Name: "Strong down", FoldChange: -3, PValue: 0.04, Category: mondrian.Down},
			{ID: "WAG000003", Name: "Strong up", FoldChange: 2, PValue: 0.2, Category: mondrian.NonSignificant},
		},
		Connectors: []mondrian.Connector{{From: "WAG000001", To: "WAG000002"}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m PathwayListModel, keys ...string) PathwayListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(PathwayListModel)
	}
	return m
}

func TestPathwayListSorting(t *testing.T) {
	m := NewPathwayListModel(testBrowseLayout())
	if got := m.Blocks[0].ID; got != "WAG000002" {
		t.Errorf("first by |wFC| = %s, want WAG000002", got)
	}

	m = update(m, "s")
	if m.Order != sortByPValue || m.Blocks[0].ID != "WAG000001" {
		t.Errorf("after s: order %v, first %s", m.Order, m.Blocks[0].ID)
	}
	m = update(m, "s")
	if m.Order != sortByID || m.Blocks[0].ID != "WAG000001" || m.Blocks[2].ID != "WAG000003" {
		t.Errorf("after s s: order %v, blocks %v", m.Order, m.Blocks)
	}
	m = update(m, "s")
	if m.Order != sortByChange {
		t.Errorf("sort order should wrap around, got %v", m.Order)
	}
}

func TestPathwayListNavigation(t *testing.T) {
	m := NewPathwayListModel(testBrowseLayout())
	m.Height = 2

	m = update(m, "down", "down", "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m = update(m, "up", "up", "up")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("Cursor/Offset = %d/%d, want 0/0", m.Cursor, m.Offset)
	}
	m = update(m, "G")
	if m.Cursor != 2 {
		t.Errorf("G: Cursor = %d, want 2", m.Cursor)
	}
}

func TestPathwayListSelect(t *testing.T) {
	m := NewPathwayListModel(testBrowseLayout())
	next, cmd := update(m, "down").Update(key("enter"))
	m = next.(PathwayListModel)
	if m.Selected == nil || m.Selected.ID != "WAG000003" {
		t.Fatalf("Selected = %v, want WAG000003", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPathwayListView(t *testing.T) {
	m := NewPathwayListModel(testBrowseLayout())
	view := m.View()
	for _, want := range []string{"Pathways", "WAG000002", "Strong down", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if m.Links["WAG000001"] != 1 || m.Links["WAG000003"] != 0 {
		t.Errorf("Links = %v", m.Links)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Glycolysis", 20); got != "Glycolysis" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("Glycolysis / Gluconeogenesis", 10); got != "Glycolysi…" {
		t.Errorf("truncate long = %q", got)
	}
}
