package json

import (
	stdjson "encoding/json"
	"testing"

	"github.com/freekieb7/calcd/test"
)

func TestAppendString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "value one", `"value one"`},
		{"empty", "", `""`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `value\three`, `"value\\three"`},
		{"control", "a\tb\nc\x01", `"a\tb\nc\u0001"`},
		{"html safe", "q=0.9&<a>'", `"q\u003d0.9\u0026\u003ca\u003e\u0027"`},
		{"utf8", "héllo wörld", `"héllo wörld"`},
		{"invalid utf8", "a\xffb", `"a\ufffdb"`},
		{"line separator", "a\u2028b", `"a\u2028b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.want, string(AppendString(nil, tt.input)))
		})
	}
}

func TestMarshalObjectKeepsOrder(t *testing.T) {
	got := MarshalObject([]Member{
		{Name: "Host", Value: "localhost"},
		{Name: "Accept", Value: "*/*"},
	})

	test.Equal(t, `{"Host":"localhost","Accept":"*/*"}`, string(got))
}

func TestMarshalMapSortsKeys(t *testing.T) {
	got := MarshalMap(map[string]string{
		"key2": "value two",
		"key1": "value1",
		"key3": `value\three`,
	})

	test.Equal(t, `{"key1":"value1","key2":"value two","key3":"value\\three"}`, string(got))
}

func TestMarshalMapEmpty(t *testing.T) {
	test.Equal(t, "{}", string(MarshalMap(nil)))
}

func TestMarshalMapDecodesWithStdlib(t *testing.T) {
	want := map[string]string{
		"a": "<script>alert('x')</script>",
		"b": "tab\there",
		"c": "ünïcode",
	}

	var got map[string]string
	if err := stdjson.Unmarshal(MarshalMap(want), &got); err != nil {
		t.Fatal(err)
	}

	for key, value := range want {
		test.Equal(t, value, got[key])
	}
}

func BenchmarkMarshalMap(b *testing.B) {
	m := map[string]string{
		"key1": "value1",
		"key2": "value two",
		"key3": `value\three`,
	}

	for b.Loop() {
		MarshalMap(m)
	}
}
