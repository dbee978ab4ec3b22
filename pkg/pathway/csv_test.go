package pathway

import (
	"strings"
	"testing"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

const sampleCSV = `GS_ID,wFC,pFDR,x,y,NAME,Extra
WAG002659,1.1057,3.5e-17,120,340,Pathway A,foo
WAG002805,0.6,0.001,500,500,Pathway B,
WAG000001,,0.2,10,10,Pathway C,bar
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV), "sample")
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if ds.Name != "sample" {
		t.Errorf("Name = %q, want %q", ds.Name, "sample")
	}
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	if len(ds.Errors) != 0 {
		t.Errorf("Errors = %v, want none", ds.Errors)
	}

	r, ok := ds.Lookup("WAG002659")
	if !ok {
		t.Fatal("Lookup(WAG002659) not found")
	}
	if r.FoldChange != 1.1057 || r.PValue != 3.5e-17 || r.X != 120 || r.Y != 340 {
		t.Errorf("record = %+v", r)
	}
	if r.Row != 2 {
		t.Errorf("Row = %d, want 2", r.Row)
	}
	if r.Extra["Extra"] != "foo" {
		t.Errorf("Extra = %v, want foo", r.Extra)
	}

	c, _ := ds.Lookup("WAG000001")
	if c.FoldChange != 0 {
		t.Errorf("missing wFC parsed as %v, want 0", c.FoldChange)
	}
}

func TestReadCSVRowErrors(t *testing.T) {
	input := "GS_ID,wFC,pFDR,x,y,NAME\n" +
		"A,1.5,0.01,1,1,ok\n" +
		",1.5,0.01,1,1,no id\n" +
		"B,abc,0.01,1,1,bad fc\n" +
		"C,1.5,,1,1,no p\n" +
		"D,1.5,2,1,1,p out of range\n" +
		"E,1.5,0.01,,1,no x\n" +
		"F,1.5,0.01,1,Inf,inf y\n" +
		"A,2,0.01,1,1,duplicate\n" +
		"\n" +
		"G,-1.2,0.01,5,5,ok\n"

	ds, err := ReadCSV(strings.NewReader(input), "bad")
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}

	if got := ds.IDs(); strings.Join(got, ",") != "A,G" {
		t.Errorf("IDs() = %v, want [A G]", got)
	}

	tests := []struct {
		row    int
		column string
	}{
		{3, ColID},
		{4, ColFoldChange},
		{5, ColPValue},
		{6, ColPValue},
		{7, ColX},
		{8, ColY},
		{9, ColID},
	}
	if len(ds.Errors) != len(tests) {
		t.Fatalf("len(Errors) = %d, want %d: %v", len(ds.Errors), len(tests), ds.Errors)
	}
	for i, tt := range tests {
		e := ds.Errors[i]
		if e.Row != tt.row || e.Column != tt.column {
			t.Errorf("Errors[%d] = row %d column %q, want row %d column %q", i, e.Row, e.Column, tt.row, tt.column)
		}
		if !apperrors.Is(e, apperrors.ErrCodeInvalidRow) {
			t.Errorf("Errors[%d] code = %v, want %v", i, apperrors.GetCode(e), apperrors.ErrCodeInvalidRow)
		}
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("GS_ID,wFC,x\nA,1,2\n"), "cols")
	if err == nil {
		t.Fatal("ReadCSV should fail on missing columns")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidColumn) {
		t.Errorf("code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidColumn)
	}
	if !strings.Contains(err.Error(), "pFDR, y, NAME") {
		t.Errorf("error = %v, want missing column list", err)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), "empty"); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("ReadCSV(empty) error = %v, want %v", err, apperrors.ErrCodeInvalidInput)
	}
}

func TestReadCSVByteOrderMark(t *testing.T) {
	input := "\ufeffGS_ID , wFC,pFDR,x,y,NAME\nA,1,0.01,1,1,n\n"
	ds, err := ReadCSV(strings.NewReader(input), "bom")
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if !ds.Has("A") {
		t.Error("record A not loaded")
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"WAG002659", "2659"},
		{"WP1", "WP1"},
		{"ABCD", "ABCD"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortID(tt.in); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Record{ID: "X"}).DisplayName(); got != "X" {
		t.Errorf("DisplayName() = %q, want %q", got, "X")
	}
	if got := (Record{ID: "X", Name: "Name"}).DisplayName(); got != "Name" {
		t.Errorf("DisplayName() = %q, want %q", got, "Name")
	}
}
