package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/source"
	"github.com/vango-dev/markup/pkg/vdom"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "attribute error",
			code:    "M101",
			wantMsg: "Attribute not permitted",
			wantCat: CategorySchema,
		},
		{
			name:    "source error",
			code:    "M202",
			wantMsg: "Document decode failed",
			wantCat: CategorySource,
		},
		{
			name:    "publish error",
			code:    "M601",
			wantMsg: "Publish failed",
			wantCat: CategoryPublish,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestSchemaCodesRegistered(t *testing.T) {
	errs := []interface{ Code() string }{
		&schema.AttributeNotPermittedError{},
		&schema.ChildNotPermittedError{},
		&schema.InvalidAttributeValueError{},
	}
	for _, e := range errs {
		tmpl, ok := GetTemplate(e.Code())
		if !ok {
			t.Errorf("code %s not registered", e.Code())
			continue
		}
		if tmpl.Category != CategorySchema {
			t.Errorf("code %s category = %q", e.Code(), tmpl.Category)
		}
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategorySource, "file %q not found", "index.yaml")
	if err.Message != `file "index.yaml" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "index.yaml" not found`)
	}
	if err.Category != CategorySource {
		t.Errorf("Category = %q, want %q", err.Category, CategorySource)
	}
}

func TestMarkupError_Error(t *testing.T) {
	err := New("M101")
	got := err.Error()
	want := "M101: Attribute not permitted"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &MarkupError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	// Wrapped message wins
	err3 := New("M301").Wrap(fmt.Errorf("disk full"))
	if err3.Error() != "M301: disk full" {
		t.Errorf("Error() = %q", err3.Error())
	}
}

func TestMarkupError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "index.yaml")
	content := `html:
  body:
    - p: hello
    - input:
        children:
          - div: {}
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("M102").WithLocation(tmpFile, 5, 9)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.File != tmpFile {
		t.Errorf("Location.File = %q, want %q", err.Location.File, tmpFile)
	}
	if err.Location.Line != 5 || err.Location.Column != 9 {
		t.Errorf("Location = %d:%d, want 5:9", err.Location.Line, err.Location.Column)
	}
	if len(err.Context) != 4 || err.Context[2] != "        children:" {
		t.Errorf("Context = %q", err.Context)
	}

	// Missing file keeps the location without context.
	err = New("M102").WithLocation(filepath.Join(tmpDir, "missing.yaml"), 2, 1)
	if err.Location == nil || len(err.Context) != 0 {
		t.Errorf("unexpected location/context: %v %v", err.Location, err.Context)
	}
}

func TestMarkupError_Builders(t *testing.T) {
	err := New("M103").
		WithSuggestion("use post").
		WithExample("method: post").
		WithDetail("Custom detail").
		WithPath("/0/1")

	if err.Suggestion != "use post" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Example != "method: post" {
		t.Errorf("Example = %q", err.Example)
	}
	if err.Detail != "Custom detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Path != "/0/1" {
		t.Errorf("Path = %q", err.Path)
	}
}

func TestMarkupError_Wrap(t *testing.T) {
	inner := New("M202")
	outer := New("M201").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "M301") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	me := New("M301")
	if FromError(me, "M901") != me {
		t.Error("FromError should return MarkupError as-is")
	}
	if FromError(fmt.Errorf("wrapped: %w", me), "M901") != me {
		t.Error("FromError should find a wrapped MarkupError")
	}

	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "M301")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

type positionedError struct {
	err  error
	file string
	line int
	col  int
	path string
}

func (e *positionedError) Error() string                 { return e.err.Error() }
func (e *positionedError) Unwrap() error                 { return e.err }
func (e *positionedError) Position() (string, int, int) { return e.file, e.line, e.col }
func (e *positionedError) NodePath() string              { return e.path }

func TestClassify(t *testing.T) {
	_, childErr := vdom.Build(schema.Input).Child(vdom.Build(schema.Div)).Node()
	_, attrErr := vdom.Build(schema.Div).Attribute(schema.AttrHref, "/").Node()
	_, valueErr := vdom.Build(schema.Form).Attribute(schema.AttrMethod, "put").Node()
	_, tagErr := vdom.BuildTag("marquee").Node()

	tests := []struct {
		name     string
		err      error
		code     string
		hintPart string
	}{
		{"child", childErr, "M102", "void element"},
		{"attribute", attrErr, "M101", "global attributes"},
		{"value", valueErr, "M103", "method"},
		{"unknown element", tagErr, "M105", "markup schema"},
		{"node cycle", fmt.Errorf("x: %w", vdom.ErrNodeCycle), "M104", ""},
		{"source syntax", fmt.Errorf("x: %w", source.ErrSyntax), "M202", ""},
		{"other", stderrors.New("boom"), "M901", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected a builder error")
			}
			me := Classify(tt.err)
			if me.Code != tt.code {
				t.Errorf("Code = %q, want %q (%v)", me.Code, tt.code, tt.err)
			}
			if !strings.Contains(me.Suggestion, tt.hintPart) {
				t.Errorf("Suggestion = %q, want it to contain %q", me.Suggestion, tt.hintPart)
			}
			if !stderrors.Is(me, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassifyPosition(t *testing.T) {
	_, childErr := vdom.Build(schema.Ul).Child(vdom.Build(schema.P)).Node()
	err := fmt.Errorf("decode: %w", &positionedError{
		err:  childErr,
		file: "page.yaml",
		line: 3,
		col:  7,
		path: "/1/0",
	})

	me := Classify(err)
	if me.Code != "M102" {
		t.Fatalf("Code = %q", me.Code)
	}
	if me.Location.String() != "page.yaml:3:7" {
		t.Errorf("Location = %q", me.Location)
	}
	if me.Path != "/1/0" {
		t.Errorf("Path = %q", me.Path)
	}
	if !stderrors.Is(me, schema.ErrChildNotPermitted) {
		t.Error("errors.Is should see through the diagnostic")
	}
	if !strings.Contains(me.FormatCompact(), "page.yaml:3:7: M102:") {
		t.Errorf("FormatCompact = %q", me.FormatCompact())
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
		{
			name: "with column",
			loc:  &Location{File: "page.yaml", Line: 10, Column: 5},
			want: "page.yaml:10:5",
		},
		{
			name: "without column",
			loc:  &Location{File: "page.yaml", Line: 10, Column: 0},
			want: "page.yaml:10",
		},
		{
			name: "file only",
			loc:  &Location{File: "page.json"},
			want: "page.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loc.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "page.yaml")
	content := `html:
  body:
    - input:
        children:
          - div: {}
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("M102").
		WithLocation(tmpFile, 4, 9).
		WithPath("/1/0").
		WithSuggestion("<input> is a void element and takes no children").
		WithExample("- input: {}")

	formatted := err.Format()

	for _, want := range []string{
		"ERROR M102: Child not permitted",
		tmpFile + ":4:9",
		"at /1/0",
		"→    4 │         children:",
		"Hint: <input> is a void element",
		"Example:",
		"Learn more: " + docBase + "M102",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format should contain %q:\n%s", want, formatted)
		}
	}
	if strings.Contains(formatted, "\x1b[") {
		t.Error("Format should not contain escape codes with colors disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("M101")
	if got := err.FormatCompact(); got != "M101: Attribute not permitted" {
		t.Errorf("FormatCompact() = %q", got)
	}

	err = New("M101").WithLocation("page.json", 0, 0).WithPath("/0")
	if got := err.FormatCompact(); got != "page.json: M101: Attribute not permitted (at /0)" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("M103").WithLocation("page.toml", 3, 1).WithPath("/1")

	var got map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("invalid JSON: %v", jerr)
	}
	if got["code"] != "M103" {
		t.Errorf("code = %v", got["code"])
	}
	if got["category"] != "schema" {
		t.Errorf("category = %v", got["category"])
	}
	if got["path"] != "/1" {
		t.Errorf("path = %v", got["path"])
	}
	loc, ok := got["location"].(map[string]any)
	if !ok || loc["file"] != "page.toml" {
		t.Errorf("location = %v", got["location"])
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	found := false
	for _, code := range codes {
		if code == "M101" {
			found = true
			break
		}
	}
	if !found {
		t.Error("M101 should be in the codes list")
	}
}

func TestRegister(t *testing.T) {
	Register("M999", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom test error",
	})
	defer delete(registry, "M999")

	err := New("M999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestPaintDisabled(t *testing.T) {
	DisableColors()
	defer EnableColors()
	if got := paint(errorStyle, "test"); got != "test" {
		t.Errorf("paint = %q, want plain text", got)
	}
}
