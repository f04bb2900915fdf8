package grid

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func mustBuild(t *testing.T, elements []Element) *Projection {
	t.Helper()
	p, err := Build(elements)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return p
}

func TestBuild_Empty(t *testing.T) {
	p := mustBuild(t, nil)
	if path := p.Path(1, 1); len(path) != 0 {
		t.Errorf("Expected empty path for empty projection, got %v", path)
	}
	if path := p.Path(100, 100); len(path) != 0 {
		t.Errorf("Expected empty path for empty projection, got %v", path)
	}
}

func TestBuild_InvalidSpan(t *testing.T) {
	tests := []struct {
		name    string
		element Element
	}{
		{"zero rowspan", Element{Role: RoleHeader, Row: 1, Col: 1, RowSpan: 0, ColSpan: 1, Text: "A"}},
		{"zero colspan", Element{Role: RoleData, Row: 2, Col: 3, RowSpan: 1, ColSpan: 0, Text: "B"}},
		{"negative rowspan", Element{Role: RoleHeader, Row: 1, Col: 1, RowSpan: -1, ColSpan: 1, Text: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]Element{tt.element})
			if err == nil {
				t.Fatal("Expected error for invalid span, got nil")
			}
			if !errors.Is(err, ErrInvalidSpan) {
				t.Errorf("Expected ErrInvalidSpan, got %v", err)
			}
		})
	}
}

func TestPath_SimpleRowHeader(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 1, 1, 1, "Category"),
		Data(1, 2, "Value"),
	})

	path := p.Path(1, 2)
	if !reflect.DeepEqual(path, []string{"Category"}) {
		t.Errorf("Expected [Category], got %v", path)
	}
}

func TestPath_SimpleColumnHeader(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Q1"),
		Data(2, 2, "100"),
	})

	path := p.Path(2, 2)
	if !reflect.DeepEqual(path, []string{"Q1"}) {
		t.Errorf("Expected [Q1], got %v", path)
	}
}

// A blank corner cell above the row-header column carries no scoping
// authority; the remaining headers resolve normally.
func TestPath_CornerTable(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 1, 1, 1, ""),
		Header(1, 2, 1, 1, "Q1"),
		Header(2, 1, 1, 1, "Revenue"),
		Data(2, 2, "100"),
	})

	path := p.Path(2, 2)
	if !reflect.DeepEqual(path, []string{"Revenue", "Q1"}) {
		t.Errorf("Expected [Revenue Q1], got %v", path)
	}
}

// Nested row headers accumulate outermost first: a spanning section
// header contributes context to every row it covers.
func TestPath_NestedRowHeaders(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Q1"),
		Header(2, 1, 2, 1, "Revenue"),
		Header(3, 1, 1, 1, "North America"),
		Data(2, 2, "90"),
		Data(3, 2, "40"),
	})

	path := p.Path(3, 2)
	if !reflect.DeepEqual(path, []string{"Revenue", "North America", "Q1"}) {
		t.Errorf("Expected [Revenue North America Q1], got %v", path)
	}

	// The outer header alone governs its own row.
	path = p.Path(2, 2)
	if !reflect.DeepEqual(path, []string{"Revenue", "Q1"}) {
		t.Errorf("Expected [Revenue Q1], got %v", path)
	}
}

// Two header columns: the outer spanning header reads before the inner
// per-row header, then the column header.
func TestPath_TwoHeaderColumns(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 3, 1, 1, "Q1"),
		Header(2, 1, 2, 1, "Revenue"),
		Header(2, 2, 1, 1, "North America"),
		Header(3, 2, 1, 1, "Europe"),
		Data(2, 3, "40"),
		Data(3, 3, "50"),
	})

	if path := p.Path(2, 3); !reflect.DeepEqual(path, []string{"Revenue", "North America", "Q1"}) {
		t.Errorf("Expected [Revenue North America Q1], got %v", path)
	}
	if path := p.Path(3, 3); !reflect.DeepEqual(path, []string{"Revenue", "Europe", "Q1"}) {
		t.Errorf("Expected [Revenue Europe Q1], got %v", path)
	}
}

// A merged header in column 1 above the first data row is a column
// header, not a row header: it precedes the data region vertically.
func TestPath_MergedCornerHeaderIsColumnHeader(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 1, 2, 2, "Region"),
		Data(3, 2, "40"),
	})

	// Owns columns 1 and 2 for all rows strictly below row 1.
	if path := p.Path(3, 2); !reflect.DeepEqual(path, []string{"Region"}) {
		t.Errorf("Expected [Region], got %v", path)
	}
	if path := p.Path(2, 1); !reflect.DeepEqual(path, []string{"Region"}) {
		t.Errorf("Expected [Region], got %v", path)
	}
	// Never governs its own row.
	if path := p.Path(1, 2); len(path) != 0 {
		t.Errorf("Expected empty path on the header's own row, got %v", path)
	}
}

func TestPath_ColumnHeaderSelfExclusion(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Q1"),
		Data(2, 2, "100"),
	})

	if path := p.Path(1, 2); len(path) != 0 {
		t.Errorf("Expected column header excluded from its own row, got %v", path)
	}
}

func TestPath_RowHeaderIncludesOwnRow(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(2, 1, 1, 1, "Revenue"),
		Data(2, 2, "100"),
	})

	if path := p.Path(2, 2); !reflect.DeepEqual(path, []string{"Revenue"}) {
		t.Errorf("Expected row header to govern its own row, got %v", path)
	}
}

func TestPath_Column1Exclusion(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Q1"),
		Header(2, 1, 1, 1, "Revenue"),
		Data(2, 2, "100"),
	})

	// A cell in column 1 is on the row-header axis; it must not inherit
	// its own row's header.
	if path := p.Path(2, 1); len(path) != 0 {
		t.Errorf("Expected no row-header context in column 1, got %v", path)
	}
}

func TestPath_EmptyHeaderIsInert(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "   "),
		Data(2, 2, "100"),
	})

	if path := p.Path(2, 2); len(path) != 0 {
		t.Errorf("Expected blank header to register nothing, got %v", path)
	}
}

// A label repeated at two nesting depths covering the same row survives
// once, at the earliest origin. This is the fill-down case: spreadsheet
// adapters repeat a header label for each row it visually covers.
func TestPath_DedupKeepsEarliestOrigin(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(2, 1, 2, 1, "Region"),
		Header(3, 1, 1, 1, "Region"),
		Data(2, 2, "10"),
		Data(3, 2, "20"),
	})

	if path := p.Path(3, 2); !reflect.DeepEqual(path, []string{"Region"}) {
		t.Errorf("Expected [Region] exactly once, got %v", path)
	}
}

// Query-time dedup spans both phases: a column header repeating a
// row-header label does not appear twice.
func TestPath_DedupAcrossPhases(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Total"),
		Header(2, 1, 1, 1, "Total"),
		Data(2, 2, "100"),
	})

	if path := p.Path(2, 2); !reflect.DeepEqual(path, []string{"Total"}) {
		t.Errorf("Expected [Total] exactly once, got %v", path)
	}
}

func TestPath_OutOfRangeCoordinates(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Q1"),
		Data(2, 2, "100"),
	})

	for _, coord := range [][2]int{{-1, -1}, {0, 0}, {99, 99}, {2, 50}} {
		if path := p.Path(coord[0], coord[1]); len(path) != 0 {
			t.Errorf("Expected empty path at (%d,%d), got %v", coord[0], coord[1], path)
		}
	}
}

func TestPath_HeadersOnly(t *testing.T) {
	// No data elements at all: every header is a column header.
	p := mustBuild(t, []Element{
		Header(1, 1, 1, 1, "A"),
		Header(1, 2, 1, 1, "B"),
	})

	if path := p.Path(2, 1); !reflect.DeepEqual(path, []string{"A"}) {
		t.Errorf("Expected [A], got %v", path)
	}
	if path := p.Path(2, 2); !reflect.DeepEqual(path, []string{"B"}) {
		t.Errorf("Expected [B], got %v", path)
	}
}

func TestBuild_Determinism(t *testing.T) {
	elements := []Element{
		Header(1, 2, 1, 2, "H1"),
		Header(2, 1, 2, 1, "R1"),
		Header(3, 1, 1, 1, "R2"),
		Data(2, 2, "a"),
		Data(2, 3, "b"),
		Data(3, 2, "c"),
		Data(3, 3, "d"),
	}

	p1 := mustBuild(t, elements)
	p2 := mustBuild(t, elements)

	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			a := p1.Path(row, col)
			b := p2.Path(row, col)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("Paths diverge at (%d,%d): %v vs %v", row, col, a, b)
			}
		}
	}
}

func TestBuild_OrderInvariance(t *testing.T) {
	elements := []Element{
		Header(1, 2, 1, 1, "Q1"),
		Header(2, 1, 2, 1, "Revenue"),
		Header(3, 1, 1, 1, "North America"),
		Data(2, 2, "90"),
		Data(3, 2, "40"),
	}
	reversed := make([]Element, len(elements))
	for i, el := range elements {
		reversed[len(elements)-1-i] = el
	}

	p1 := mustBuild(t, elements)
	p2 := mustBuild(t, reversed)

	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			a := p1.Path(row, col)
			b := p2.Path(row, col)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("Input order changed path at (%d,%d): %v vs %v", row, col, a, b)
			}
		}
	}
}

func TestBuildWithConfig_ExclusiveRowHeaders(t *testing.T) {
	elements := []Element{
		Header(2, 1, 2, 1, "Revenue"),
		Header(3, 1, 1, 1, "North America"),
		Data(2, 2, "90"),
		Data(3, 2, "40"),
	}

	cfg := Config{RowHeaderIncludesOwnRow: false}
	p, err := BuildWithConfig(elements, cfg)
	if err != nil {
		t.Fatalf("BuildWithConfig failed: %v", err)
	}

	// With the exclusive policy a row header originating on the queried
	// row is skipped; only headers strictly above contribute.
	if path := p.Path(3, 2); !reflect.DeepEqual(path, []string{"Revenue"}) {
		t.Errorf("Expected [Revenue], got %v", path)
	}
	if path := p.Path(2, 2); len(path) != 0 {
		t.Errorf("Expected empty path under exclusive policy, got %v", path)
	}
}

func TestPath_QueryDoesNotMutate(t *testing.T) {
	p := mustBuild(t, []Element{
		Header(1, 2, 1, 1, "Q1"),
		Header(2, 1, 1, 1, "Revenue"),
		Data(2, 2, "100"),
	})

	want := p.Path(2, 2)
	for i := 0; i < 10; i++ {
		if got := p.Path(2, 2); !reflect.DeepEqual(got, want) {
			t.Fatalf("Path changed across repeated queries: %v vs %v", got, want)
		}
	}
}

func ExampleProjection_Path() {
	elements := []Element{
		Header(1, 2, 1, 1, "Q1"),
		Header(2, 1, 1, 1, "Revenue"),
		Data(2, 2, "100"),
	}
	p, _ := Build(elements)
	fmt.Println(p.Path(2, 2))
	// Output: [Revenue Q1]
}
