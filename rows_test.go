package jsonedit

import (
	"testing"
)

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(nil); got != "{}" {
		t.Fatalf("Normalize(nil) = %q", got)
	}
}

func TestNormalizeSingleUnkeyedRow(t *testing.T) {
	tests := []struct {
		v    *Value
		want string
	}{
		{Int(42), "42"},
		{String("abc"), `"abc"`},
		{Null(), "null"},
		{mustParse(t, `[1]`), "[\n  1\n]"},
	}
	for _, tt := range tests {
		if got := Normalize([]AttributeRow{UnkeyedRow(tt.v)}); got != tt.want {
			t.Errorf("Normalize(%s) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestNormalizeExcludesContainerRows(t *testing.T) {
	rows := []AttributeRow{
		Row("x", Int(1)),
		Row("y", mustParse(t, `[1,2]`)),
	}
	if got := Normalize(rows); got != "{\n  \"x\": 1\n}" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeKeepsRowOrder(t *testing.T) {
	rows := []AttributeRow{
		Row("zeta", String("z")),
		Row("obj", Object()),
		Row("alpha", Bool(false)),
		Row("nothing", Null()),
	}
	want := "{\n  \"zeta\": \"z\",\n  \"alpha\": false,\n  \"nothing\": null\n}"
	if got := Normalize(rows); got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeSkipsUnkeyedRowsAmongMany(t *testing.T) {
	rows := []AttributeRow{
		UnkeyedRow(Int(1)),
		UnkeyedRow(Int(2)),
	}
	if got := Normalize(rows); got != "{}" {
		t.Fatalf("Normalize = %q", got)
	}
	rows = append(rows, Row("k", Int(3)))
	if got := Normalize(rows); got != "{\n  \"k\": 3\n}" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeSingleKeyedRowIsWrapped(t *testing.T) {
	if got := Normalize([]AttributeRow{Row("k", String("<v>"))}); got != "{\n  \"k\": \"<v>\"\n}" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeForEditMatchesNormalize(t *testing.T) {
	node := mustParse(t, `{"name":"ann","tags":["a"],"age":41,"addr":{"city":"x"}}`)
	rows := Rows(node)
	if a, b := Normalize(rows), NormalizeForEdit(rows); a != b {
		t.Fatalf("NormalizeForEdit = %q, Normalize = %q", b, a)
	}
	want := "{\n  \"name\": \"ann\",\n  \"age\": 41\n}"
	if got := NormalizeForEdit(rows); got != want {
		t.Fatalf("NormalizeForEdit = %q, want %q", got, want)
	}
}

func TestRows(t *testing.T) {
	obj := mustParse(t, `{"a":1,"b":[2],"c":{}}`)
	rows := Rows(obj)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	wantKinds := []RowKind{RowPrimitive, RowArray, RowObject}
	for i, r := range rows {
		if r.Key == nil || *r.Key != obj.Keys()[i] {
			t.Errorf("row %d key = %v", i, r.Key)
		}
		if r.Kind != wantKinds[i] {
			t.Errorf("row %d kind = %s, want %s", i, r.Kind, wantKinds[i])
		}
	}

	arr := Rows(mustParse(t, `[1,{"x":1}]`))
	if len(arr) != 2 || arr[0].Key != nil || arr[1].Kind != RowObject {
		t.Fatalf("array rows = %+v", arr)
	}

	scalar := Rows(Int(7))
	if len(scalar) != 1 || scalar[0].Key != nil || Normalize(scalar) != "7" {
		t.Fatalf("scalar rows = %+v", scalar)
	}
}

func TestRowsEditRoundTrip(t *testing.T) {
	doc := mustParse(t, `{"customer":[{"name":"ann","age":41}]}`)
	path := P("customer", 0, "age")
	node, _ := Get(doc, path)
	text := NormalizeForEdit(Rows(node))
	if text != "41" {
		t.Fatalf("edit text = %q", text)
	}
	edited, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	out, err := Update(doc, path, edited)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !Equal(doc, out) {
		t.Fatalf("unedited round trip changed the document: %s", out)
	}
}
