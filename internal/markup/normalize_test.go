package markup

import (
	"strings"
	"testing"
)

func TestNormalize_Paragraph(t *testing.T) {
	blocks := Normalize("Osmosis is the movement of water\nacross a membrane.", DefaultOptions("Biology"))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Kind != KindParagraph {
		t.Fatalf("expected paragraph, got %s", blocks[0].Kind)
	}
	if blocks[0].Text != "Osmosis is the movement of water across a membrane." {
		t.Errorf("whitespace not collapsed: %q", blocks[0].Text)
	}
}

func TestNormalize_Heading(t *testing.T) {
	cases := []string{
		"Key Properties:",
		"## Overview",
		"DEFINITION",
		"NEWTONIAN MECHANICS",
	}
	for _, in := range cases {
		blocks := Normalize(in, DefaultOptions("Physics"))
		if len(blocks) != 1 || blocks[0].Kind != KindHeading {
			t.Errorf("%q: expected heading, got %v", in, blocks)
		}
	}
}

func TestNormalize_HeadingTextCleaned(t *testing.T) {
	blocks := Normalize("## Core Concepts", DefaultOptions("History"))
	if blocks[0].Text != "Core Concepts" {
		t.Errorf("hash prefix not stripped: %q", blocks[0].Text)
	}
}

func TestNormalize_List(t *testing.T) {
	in := "- first property\n- second property\n- third property"
	blocks := Normalize(in, DefaultOptions("Chemistry"))
	if len(blocks) != 1 || blocks[0].Kind != KindList {
		t.Fatalf("expected list block, got %v", blocks)
	}
	want := []string{"first property", "second property", "third property"}
	if len(blocks[0].Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(blocks[0].Items))
	}
	for i, w := range want {
		if blocks[0].Items[i] != w {
			t.Errorf("item %d: expected %q, got %q", i, w, blocks[0].Items[i])
		}
	}
}

func TestNormalize_SingleItemIsNotList(t *testing.T) {
	blocks := Normalize("- a lone bullet is read as prose", DefaultOptions("History"))
	if blocks[0].Kind != KindParagraph {
		t.Errorf("single marker line should be a paragraph, got %s", blocks[0].Kind)
	}
}

func TestNormalize_FencedCodeAlwaysCode(t *testing.T) {
	in := "```python\nprint('hi')\n```"
	blocks := Normalize(in, DefaultOptions("History"))
	if len(blocks) != 1 || blocks[0].Kind != KindCode {
		t.Fatalf("fenced block should be code regardless of subject, got %v", blocks)
	}
	if blocks[0].Language != "python" {
		t.Errorf("expected language python, got %q", blocks[0].Language)
	}
	if len(blocks[0].Lines) != 1 || blocks[0].Lines[0] != "print('hi')" {
		t.Errorf("fence markers not stripped: %v", blocks[0].Lines)
	}
}

func TestNormalize_CodeGatedBySubject(t *testing.T) {
	in := "def fib(n):\n    return n if n < 2 else fib(n-1) + fib(n-2)"

	blocks := Normalize(in, DefaultOptions("Computer Science"))
	if blocks[0].Kind != KindCode {
		t.Errorf("programming subject: expected code, got %s", blocks[0].Kind)
	}

	blocks = Normalize(in, DefaultOptions("Literature"))
	if blocks[0].Kind == KindCode {
		t.Errorf("non-programming subject should not classify unfenced text as code")
	}
}

func TestNormalize_Math(t *testing.T) {
	blocks := Normalize(`$E = mc^2$ where $m$ is rest mass`, DefaultOptions("Physics"))
	if blocks[0].Kind != KindMath {
		t.Fatalf("expected math, got %s", blocks[0].Kind)
	}
	if strings.Contains(blocks[0].Text, "$") {
		t.Errorf("dollar delimiters not stripped: %q", blocks[0].Text)
	}
}

func TestNormalize_MathMacros(t *testing.T) {
	blocks := Normalize(`\sum_{i=1}^{n} i = \frac{n(n+1)}{2}`, DefaultOptions("Mathematics"))
	if blocks[0].Kind != KindMath {
		t.Fatalf("expected math, got %s", blocks[0].Kind)
	}
	got := blocks[0].Text
	if !strings.Contains(got, "Σ") {
		t.Errorf("\\sum not translated: %q", got)
	}
	if !strings.Contains(got, "(n(n+1))/(2)") {
		t.Errorf("\\frac not translated: %q", got)
	}
}

func TestNormalize_MultipleSections(t *testing.T) {
	in := "Overview:\n\nThe heap property holds at every node.\n\n- insert is O(log n)\n- extract-min is O(log n)"
	blocks := Normalize(in, DefaultOptions("Algorithms"))
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	kinds := []Kind{KindHeading, KindParagraph, KindList}
	for i, k := range kinds {
		if blocks[i].Kind != k {
			t.Errorf("block %d: expected %s, got %s", i, k, blocks[i].Kind)
		}
	}
}

func TestNormalize_NonEmptyInputAlwaysYieldsBlock(t *testing.T) {
	blocks := Normalize("x", DefaultOptions("General"))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block for minimal input, got %d", len(blocks))
	}
}

func TestNormalize_StripsHTMLTags(t *testing.T) {
	blocks := Normalize("The <b>mitochondria</b> is the powerhouse of the cell.", DefaultOptions("Biology"))
	if strings.Contains(blocks[0].Text, "<b>") {
		t.Errorf("tags survived normalization: %q", blocks[0].Text)
	}
}

func TestWrapCodeLines_LongLine(t *testing.T) {
	long := "result = some_function(argument_one, argument_two, argument_three, argument_four)"
	out := wrapCodeLines([]string{long}, 40)
	if len(out) < 2 {
		t.Fatalf("expected wrapped output, got %v", out)
	}
	for i, line := range out[:len(out)-1] {
		if len(line) > 40 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
	}
	if !strings.HasPrefix(out[1], continuationIndent) {
		t.Errorf("continuation not indented: %q", out[1])
	}
	if joined := strings.Join(out, ""); !strings.Contains(joined, "argument_four") {
		t.Errorf("content lost in wrapping: %v", out)
	}
}

func TestWrapCodeLines_TrailingSpacesLeaveNoEmptyLine(t *testing.T) {
	long := strings.Repeat("x", 40) + strings.Repeat(" ", 10)
	out := wrapCodeLines([]string{long}, 40)
	if len(out) != 1 {
		t.Fatalf("expected 1 line, got %d: %v", len(out), out)
	}
	if out[0] != strings.Repeat("x", 40) {
		t.Errorf("unexpected wrapped line: %q", out[0])
	}
}

func TestWrapCodeLines_InteriorBlankLinePreserved(t *testing.T) {
	in := []string{"x = 1", "", "y = 2"}
	out := wrapCodeLines(in, 76)
	if len(out) != 3 || out[1] != "" {
		t.Errorf("blank line not preserved: %v", out)
	}
}

func TestWrapCodeLines_ShortLinesUntouched(t *testing.T) {
	in := []string{"x = 1", "y = 2"}
	out := wrapCodeLines(in, 76)
	if len(out) != 2 || out[0] != "x = 1" || out[1] != "y = 2" {
		t.Errorf("short lines changed: %v", out)
	}
}
