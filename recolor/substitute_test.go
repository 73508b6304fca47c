package recolor

import (
	"strings"
	"testing"
)

func TestSubstitute(t *testing.T) {
	m := &Map{
		Long: []Group{
			{Name: "red", Literals: []string{"#FF0000", "#fe0101"}},
			{Name: "blue", Literals: []string{"#0000ff"}},
		},
		Short: []Group{
			{Name: "red", Literals: []string{"#F00"}},
			{Name: "white", Literals: []string{"#fff"}},
		},
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"single",
			`fill="#ff0000"`,
			`fill="{{ theme.colors.red }}"`,
		},
		{
			"alternation and case",
			`<a fill="#FE0101" stroke="#ff0000"/><b fill="#0000FF"/>`,
			`<a fill="{{ theme.colors.red }}" stroke="{{ theme.colors.red }}"/><b fill="{{ theme.colors.blue }}"/>`,
		},
		{
			"six and three digits together",
			`#FF0000 #F00 #fff #FFFFFF`,
			`{{ theme.colors.red }} {{ theme.colors.red }} {{ theme.colors.white }} #FFFFFF`,
		},
		{
			"three digit prefix of longer run stays",
			`#f00d #fff0 #f00`,
			`#f00d #fff0 {{ theme.colors.red }}`,
		},
		{
			"adjacent",
			`#fff#ff0000`,
			`{{ theme.colors.white }}{{ theme.colors.red }}`,
		},
		{
			"character and fragment references stay",
			`<text>a&#160;b</text><use href="#fff"/><path fill="url(#F00)" stroke="#F00"/>`,
			`<text>a&#160;b</text><use href="#fff"/><path fill="url(#F00)" stroke="{{ theme.colors.red }}"/>`,
		},
		{
			"untouched",
			`<svg viewBox="0 0 16 16"/>`,
			`<svg viewBox="0 0 16 16"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.in, m)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Substitute(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSubstitute_LongBeforeShort(t *testing.T) {
	idx := testIndex(t, [2]string{"red", "#FF0000"}, [2]string{"fff", "#FFFFFF"})
	m, errs := Build(idx, []string{"#F00", "#FF0000", "#fff"})
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	got, err := Substitute(`<path fill="#FF0000"/><path fill="#F00"/><path fill="#fff"/>`, m)
	if err != nil {
		t.Fatal(err)
	}

	want := `<path fill="{{ theme.colors.red }}"/><path fill="{{ theme.colors.red }}"/><path fill="{{ theme.colors.fff }}"/>`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
	if strings.Contains(got, "#") {
		t.Errorf("literal left behind: %q", got)
	}
}

func TestCompile_Placeholder(t *testing.T) {
	m := &Map{Long: []Group{{Name: "accent", Literals: []string{"#123456"}}}}

	s, err := Compile(m, "@{colors.%s}")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Apply("#123456"); got != "@{colors.accent}" {
		t.Errorf("Apply = %q", got)
	}

	for _, bad := range []string{"no marker", "%s and %s"} {
		if _, err := Compile(m, bad); err == nil {
			t.Errorf("Compile(%q) should fail", bad)
		}
	}
}

func TestSubstitute_DoesNotMutateMap(t *testing.T) {
	m := &Map{Short: []Group{{Name: "white", Literals: []string{"#fff"}}}}
	if _, err := Substitute("#fff", m); err != nil {
		t.Fatal(err)
	}
	if m.Short[0].Literals[0] != "#fff" || len(m.Long) != 0 {
		t.Errorf("map mutated: %+v", m)
	}
}
