package utils

import (
	"strings"
	"testing"
)

func TestBuildCSVQuotesEveryField(t *testing.T) {
	out := string(BuildCSV([]string{"a", "b"}, [][]string{{"1", "plain"}, {"2", `say "hi"`}}))

	want := "\"a\",\"b\"\n\"1\",\"plain\"\n\"2\",\"say \"\"hi\"\"\"\n"
	if out != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", out, want)
	}
}

func TestBuildCSVHeaderOnly(t *testing.T) {
	out := string(BuildCSV([]string{"x"}, nil))
	if out != "\"x\"\n" {
		t.Fatalf("unexpected csv %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single line")
	}
}
