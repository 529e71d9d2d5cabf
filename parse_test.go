package jsonedit

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKeepsOrderAndLiterals(t *testing.T) {
	v := mustParse(t, `{"z":1.50,"a":-0,"m":1e3,"big":123456789012345678901234567890}`)
	if d := cmp.Diff([]string{"z", "a", "m", "big"}, v.Keys()); d != "" {
		t.Fatalf("keys (-want +got):\n%s", d)
	}
	if s := v.String(); s != `{"z":1.50,"a":-0,"m":1e3,"big":123456789012345678901234567890}` {
		t.Fatalf("got %s", s)
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":2,"a":3}`)
	if s := v.String(); s != `{"a":3,"b":2}` {
		t.Fatalf("got %s", s)
	}
}

func TestParseWideObject(t *testing.T) {
	const n = 50000
	v := mustParse(t, wideObject(n, `"k7":"last"`))
	if v.Len() != n {
		t.Fatalf("Len() = %d, want %d", v.Len(), n)
	}
	keys := v.Keys()
	if keys[0] != "k0" || keys[7] != "k7" || keys[n-1] != "k"+strconv.Itoa(n-1) {
		t.Fatalf("unexpected key order: %v ... %v", keys[:8], keys[n-1])
	}
	if s, _ := mustField(t, v, "k7").Str(); s != "last" {
		t.Fatalf("k7 = %q, want the last value", s)
	}
}

func BenchmarkParseWideObject(b *testing.B) {
	data := []byte(wideObject(20000, ""))
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func TestParseStrings(t *testing.T) {
	v := mustParse(t, `["é😀","a\/b","<&>"]`)
	want := []string{"é😀", "a/b", "<&>"}
	for i, w := range want {
		it, _ := v.Index(i)
		if s, _ := it.Str(); s != w {
			t.Errorf("item %d = %q, want %q", i, s, w)
		}
	}
	if s := v.String(); s != `["é😀","a/b","<&>"]` {
		t.Errorf("String() = %s", s)
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a":1} x`, `'a'`, `{a:1}`, `NaN`} {
		_, err := Parse([]byte(s))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) = %v, want *ParseError", s, err)
		}
	}
}

func TestParseErrorOffset(t *testing.T) {
	_, err := Parse([]byte(`{"a": tru}`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Offset == 0 {
		t.Fatalf("expected an offset, got %v", pe)
	}
}

func TestMarshalIndent(t *testing.T) {
	v := mustParse(t, `{"a":[1,{"b":null}],"e":{},"l":[]}`)
	got, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{
  "a": [
    1,
    {
      "b": null
    }
  ],
  "e": {},
  "l": []
}`
	if string(got) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	got, err = Marshal(v, Indent(4))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if want4 := "{\n    \"a\": [\n        1,"; string(got[:len(want4)]) != want4 {
		t.Fatalf("4-space output:\n%s", got)
	}
}

func TestMarshalRejectsBadNumberLiteral(t *testing.T) {
	for _, lit := range []string{"", "abc", "01", "1.", "+1"} {
		if _, err := Marshal(Array(Number(lit))); err == nil {
			t.Errorf("Marshal(Number(%q)) should fail", lit)
		}
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "0"},
		{100, "100"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
	}
	for _, tt := range tests {
		if got, _ := Float(tt.f).Number(); got != tt.want {
			t.Errorf("Float(%v) = %s, want %s", tt.f, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, `{"x":1,"y":[true,"s",null]}`)
	b := mustParse(t, `{"y":[true,"s",null],"x":1.0}`)
	if !Equal(a, b) {
		t.Errorf("expected %s == %s", a, b)
	}
	c := mustParse(t, `{"x":1,"y":[true,"s"]}`)
	if Equal(a, c) {
		t.Errorf("expected %s != %s", a, c)
	}
	if !Equal(nil, Null()) {
		t.Errorf("nil should equal null")
	}
}

// wideObject returns a flat object with n members k0..k<n-1>, followed by
// extra when it is not empty.
func wideObject(n int, extra string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"k` + strconv.Itoa(i) + `":` + strconv.Itoa(i))
	}
	if extra != "" {
		b.WriteString("," + extra)
	}
	b.WriteByte('}')
	return b.String()
}

func mustField(t *testing.T, v *Value, key string) *Value {
	t.Helper()
	f, ok := v.Field(key)
	if !ok {
		t.Fatalf("no member %q in %s", key, v)
	}
	return f
}
