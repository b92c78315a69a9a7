package cmdline

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want []string
	}{
		"empty":                    {in: "", want: nil},
		"only blanks":              {in: " \t  ", want: nil},
		"single":                   {in: "build", want: []string{"build"}},
		"several":                  {in: "msbuild /t:Build  /v:q", want: []string{"msbuild", "/t:Build", "/v:q"}},
		"tabs separate":            {in: "a\tb", want: []string{"a", "b"}},
		"quoted space":             {in: `"hello world" x`, want: []string{"hello world", "x"}},
		"quote mid argument":       {in: `/p:Out="a b"`, want: []string{"/p:Out=a b"}},
		"empty quoted":             {in: `a "" b`, want: []string{"a", "", "b"}},
		"doubled quote in quotes":  {in: `"say ""hi"""`, want: []string{`say "hi"`}},
		"escaped quote":            {in: `\"x\"`, want: []string{`"x"`}},
		"even backslashes":         {in: `"C:\dir\\" next`, want: []string{`C:\dir\`, "next"}},
		"odd backslashes":          {in: `a\\\"b`, want: []string{`a\"b`}},
		"literal backslashes":      {in: `C:\a\b c`, want: []string{`C:\a\b`, "c"}},
		"no shell expansion":       {in: `$HOME * ~ | ;`, want: []string{"$HOME", "*", "~", "|", ";"}},
		"unterminated quote":       {in: `"open ended`, want: []string{"open ended"}},
		"trailing backslash":       {in: `dir\`, want: []string{`dir\`}},
		"leading trailing blanks":  {in: "  a  ", want: []string{"a"}},
		"single quotes are normal": {in: `'a b'`, want: []string{"'a", "b'"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Split(tc.in)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Split(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
