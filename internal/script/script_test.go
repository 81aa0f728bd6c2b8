package script

import "testing"

func TestScriptLines(t *testing.T) {
	s := &Script{}
	s.Line("#!/bin/sh")
	s.Blank()
	s.Line("set -eu")

	want := "#!/bin/sh\n\nset -eu\n"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSubshellIndentation(t *testing.T) {
	inner := NewSubshell()
	inner.Line("cd dir_home_jane_public")
	inner.Line("rsync")

	outer := NewSubshell()
	outer.Line("cd example.com_22_jane")
	outer.Blank()
	outer.Add(inner)

	s := &Script{}
	s.Add(outer)

	want := "(\n" +
		"    cd example.com_22_jane\n" +
		"\n" +
		"    (\n" +
		"        cd dir_home_jane_public\n" +
		"        rsync\n" +
		"    )\n" +
		")\n"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBlankLinesCarryNoIndentation(t *testing.T) {
	sub := NewSubshell()
	sub.Line("a")
	sub.Blank()
	sub.Line("b")

	s := &Script{}
	s.Add(sub)

	want := "(\n    a\n\n    b\n)\n"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEmptyScript(t *testing.T) {
	s := &Script{}
	if got := s.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
