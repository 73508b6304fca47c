package recolor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Brannigan123/blessed-icon-template/cielab"
	"github.com/Brannigan123/blessed-icon-template/palette"
)

func testIndex(t *testing.T, pairs ...[2]string) *palette.LabIndex {
	t.Helper()
	p, err := palette.FromHex(pairs...)
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	return palette.NewLabIndex(p)
}

func blessedIndex(t *testing.T) *palette.LabIndex {
	return testIndex(t,
		[2]string{"black", "#171421"},
		[2]string{"red", "#E66D76"},
		[2]string{"green", "#5EDEA3"},
		[2]string{"orange", "#EFAB73"},
		[2]string{"blue", "#73A3DE"},
		[2]string{"magenta", "#D06FE8"},
		[2]string{"cyan", "#75DBEB"},
		[2]string{"gray", "#7a7e85"},
		[2]string{"yellow", "#F3D175"},
		[2]string{"white", "#FFFFFF"},
	)
}

func TestBuild_NearestRed(t *testing.T) {
	idx := testIndex(t, [2]string{"red", "#FF0000"}, [2]string{"blue", "#0000FF"})

	m, errs := Build(idx, []string{"#FE0101"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if name, ok := m.Lookup("#FE0101"); !ok || name != "red" {
		t.Errorf("Lookup(#FE0101) = %q, %v; want red", name, ok)
	}
}

func TestBuild_GroupsByWidth(t *testing.T) {
	idx := testIndex(t, [2]string{"red", "#FF0000"}, [2]string{"blue", "#0000FF"})

	m, errs := Build(idx, []string{"#F00", "#ff0000", "#00F", "#0000fe", "#e00"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	wantLong := []Group{{"red", []string{"#ff0000"}}, {"blue", []string{"#0000fe"}}}
	wantShort := []Group{{"red", []string{"#F00", "#e00"}}, {"blue", []string{"#00F"}}}
	if !reflect.DeepEqual(m.Long, wantLong) {
		t.Errorf("Long = %v, want %v", m.Long, wantLong)
	}
	if !reflect.DeepEqual(m.Short, wantShort) {
		t.Errorf("Short = %v, want %v", m.Short, wantShort)
	}
}

func TestBuild_EveryLiteralExactlyOnce(t *testing.T) {
	literals := []string{
		"#000", "#fff", "#FFFFFF", "#123456", "#abcdef", "#E66D76", "#e66d77", "#5edea3",
		"#808080", "#7a7e85", "#f0f", "#0ff", "#ff0", "#333333", "#ccc", "#D06FE8",
	}
	m, errs := Build(blessedIndex(t), literals)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	count := make(map[string]int)
	for _, grouping := range m.Groupings() {
		names := make(map[string]bool)
		for _, g := range grouping {
			if names[g.Name] {
				t.Errorf("palette entry %q appears twice in one grouping", g.Name)
			}
			names[g.Name] = true
			for _, lit := range g.Literals {
				count[lit]++
			}
		}
	}

	for _, lit := range literals {
		if count[lit] != 1 {
			t.Errorf("literal %q appears %d times, want 1", lit, count[lit])
		}
	}
	if m.Len() != len(literals) {
		t.Errorf("Len = %d, want %d", m.Len(), len(literals))
	}
}

func TestBuild_CaseVariantsCollapse(t *testing.T) {
	m, _ := Build(blessedIndex(t), []string{"#ABCDEF", "#abcdef", "#AbCdEf"})
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestBuild_GroupsFollowPaletteOrder(t *testing.T) {
	m, _ := Build(blessedIndex(t), []string{"#FFFFFF", "#000000", "#E66D76"})
	var got []string
	for _, g := range m.Long {
		got = append(got, g.Name)
	}
	if want := []string{"black", "red", "white"}; !reflect.DeepEqual(got, want) {
		t.Errorf("group order = %v, want %v", got, want)
	}
}

func TestBuild_InvalidLiteralSkipped(t *testing.T) {
	m, errs := Build(blessedIndex(t), []string{"#fff", "#ggg", "#12345"})
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !errors.Is(err, cielab.ErrInvalidColor) {
			t.Errorf("error %v is not ErrInvalidColor", err)
		}
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestBuild_EmptyPalette(t *testing.T) {
	m, errs := Build(palette.NewLabIndex(nil), []string{"#fff"})
	if m != nil {
		t.Error("expected nil map")
	}
	if len(errs) != 1 || !errors.Is(errs[0], palette.ErrEmptyPalette) {
		t.Errorf("errs = %v, want [ErrEmptyPalette]", errs)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	literals := []string{"#101010", "#fafafa", "#E66D76", "#0f0", "#00f", "#888"}
	first, _ := Build(blessedIndex(t), literals)
	for range 5 {
		again, _ := Build(blessedIndex(t), literals)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Build not deterministic: %v != %v", first, again)
		}
	}
}
