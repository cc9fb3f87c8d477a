package formatter

import (
	"errors"
	"strings"
	"testing"
)

func TestDataSuffixFormat(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{name: "integer from JSON", data: float64(150), want: "150 Charming"},
		{name: "go int", data: 230, want: "230 Charming"},
		{name: "fraction", data: 2.5, want: "2.5 Charming"},
		{name: "string", data: "Mon", want: "Mon Charming"},
		{name: "pair", data: []any{"Mon", float64(150)}, want: "Mon,150 Charming"},
		{name: "null", data: nil, want: "null Charming"},
	}

	f := DataSuffix(" Charming")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(Payload{{Data: tt.data}}, "", nil)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
			if !strings.HasSuffix(got, " Charming") {
				t.Errorf("Format() = %q, missing suffix", got)
			}
			if !strings.HasPrefix(got, JSString(tt.data)) {
				t.Errorf("Format() = %q, want prefix %q", got, JSString(tt.data))
			}
		})
	}
}

func TestDataSuffixUsesFirstEntry(t *testing.T) {
	got, err := DataSuffix(" Charming").Format(Payload{{Data: 1}, {Data: 2}}, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1 Charming" {
		t.Errorf("got %q", got)
	}
}

func TestDataSuffixEmptyPayload(t *testing.T) {
	_, err := DataSuffix(" Charming").Format(nil, "", nil)
	if !errors.Is(err, ErrPayload) {
		t.Errorf("expected ErrPayload, got %v", err)
	}
}

func TestDataSuffixScript(t *testing.T) {
	script, err := DataSuffix(` "quoted" </script>`).Script()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(script, "function (params, ticket, callback)") {
		t.Errorf("unexpected signature: %s", script)
	}
	if !strings.Contains(script, `String(params[0].data) + " \"quoted\" \u003c/script\u003e"`) {
		t.Errorf("suffix not safely quoted: %s", script)
	}
	if strings.Contains(script, "\n") {
		t.Errorf("script should be a single line: %q", script)
	}
}

func TestFromSource(t *testing.T) {
	t.Run("three parameters", func(t *testing.T) {
		src, err := FromSource("arg1, arg2, arg3", "return `${arg1[0].data} Charming`;")
		if err != nil {
			t.Fatal(err)
		}
		script, err := Script(src)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(script, "function (arg1, arg2, arg3) {") {
			t.Errorf("unexpected script %q", script)
		}
		if _, err := src.Format(Payload{{Data: 1}}, "", nil); !errors.Is(err, ErrNotEvaluable) {
			t.Errorf("expected ErrNotEvaluable, got %v", err)
		}
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := FromSource("a, b", "return a;")
		if !errors.Is(err, ErrArity) {
			t.Errorf("expected ErrArity, got %v", err)
		}
	})

	t.Run("bad identifier", func(t *testing.T) {
		if _, err := FromSource("a, b, c-d", "return a;"); err == nil {
			t.Error("expected error for invalid identifier")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		if _, err := FromSource("a, b, c", "  "); err == nil {
			t.Error("expected error for empty body")
		}
	})
}

func TestScriptRequiresScripter(t *testing.T) {
	fn := Func(func(Payload, string, Callback) (string, error) { return "", nil })
	if _, err := Script(fn); !errors.Is(err, ErrNoScript) {
		t.Errorf("expected ErrNoScript, got %v", err)
	}
}

func TestJSString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{float64(260), "260"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{true, "true"},
		{map[string]any{"a": 1}, "[object Object]"},
		{[]any{float64(1), nil, "x"}, "1,,x"},
	}
	for _, tt := range tests {
		if got := JSString(tt.in); got != tt.want {
			t.Errorf("JSString(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
