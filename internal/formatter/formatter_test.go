package formatter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonobj/internal/models"
)

func sample() *models.Object {
	inner := models.NewObject()
	inner.AddValue("d", models.BoolValue(true))

	list := models.NewArray()
	list.AddValue(models.NumberValue(1))
	list.AddValue(models.StringValue("x"))
	list.AddObject(inner)

	b := models.NewObject()
	b.AddObject("c", list)

	root := models.NewObject()
	root.AddValue("a", models.NumberValue(1))
	root.AddObject("b", b)
	root.AddObject("e", models.NewArray())
	return root
}

func TestPretty_SingleMember(t *testing.T) {
	obj := models.NewObject()
	obj.AddValue("a", models.NumberValue(1))

	assert.Equal(t, "{\n    \"a\": 1\n}", Pretty(obj))
}

func TestPretty_Nested(t *testing.T) {
	expected := `{
    "a": 1,
    "b": {
        "c": [
            1,
            "x",
            {
                "d": true
            }
        ]
    },
    "e": [

    ]
}`
	assert.Equal(t, expected, Pretty(sample()))
}

func TestPretty_Empty(t *testing.T) {
	assert.Equal(t, "{\n\n}", Pretty(models.NewObject()))
	assert.Equal(t, "[\n\n]", Pretty(models.NewArray()))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":{"c":[1,"x",{"d":true}]},"e":[]}`, Compact(sample()))
	assert.Equal(t, "{}", Compact(models.NewObject()))
	assert.Equal(t, "[]", Compact(models.NewArray()))
	assert.Equal(t, "{}", Compact(nil))
}

func TestCompact_Scalars(t *testing.T) {
	arr := models.NewArray()
	arr.AddValue(models.NullValue())
	arr.AddValue(models.BoolValue(false))
	arr.AddValue(models.NumberValue(-0.25))
	arr.AddValue(models.NumberValue(1e21))
	arr.AddValue(models.StringValue("q\"b\\n\nt\t"))

	assert.Equal(t, `[null,false,-0.25,1000000000000000000000,"q\"b\\n\nt\t"]`, Compact(arr))
}

func TestCompact_EscapedKeys(t *testing.T) {
	obj := models.NewObject()
	obj.AddValue("line\nbreak", models.NumberValue(1))
	assert.Equal(t, `{"line\nbreak":1}`, Compact(obj))
}

func TestAppendFormat(t *testing.T) {
	obj := models.NewObject()
	obj.AddValue("k", models.StringValue("v"))

	out := NewFormatter(StyleCompact).AppendFormat([]byte("prefix:"), obj)
	assert.Equal(t, `prefix:{"k":"v"}`, string(out))
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"", StylePretty, false},
		{"pretty", StylePretty, false},
		{"Compact", StyleCompact, false},
		{"yaml", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "pretty", StylePretty.String())
	assert.Equal(t, "compact", StyleCompact.String())
}

func TestFormatter_ConcurrentUse(t *testing.T) {
	doc := sample()
	want := Pretty(doc)
	f := NewFormatter(StylePretty)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Format(doc)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
