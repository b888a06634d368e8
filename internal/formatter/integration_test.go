package formatter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/models"
	"github.com/mcncl/jsonobj/internal/parser"
)

var documents = []string{
	`{}`,
	`[]`,
	`{"a":1,"b":"hi","c":true,"d":null}`,
	`{"objects":[1,2,3]}`,
	`{"user":{"name":"Jane","id":123,"tags":["go","json"]},"active":false}`,
	`{"phones":[{"type":"home","n":"555-1234"},{"type":"work"}],"matrix":[[1,2],[],[3]]}`,
	`{"escaped":"quote \" slash \\ nl \n tab \t","neg":-0.5,"frac":.25}`,
	`[{"a":[{"b":[{}]}]},null,true,"s",12.75]`,
	`{"a":1,"b":2,"a":3}`,
}

var containerOpts = cmp.AllowUnexported(models.Object{}, models.Array{}, models.Value{})

func TestRoundTrip_Compact(t *testing.T) {
	for _, doc := range documents {
		t.Run(doc, func(t *testing.T) {
			x, err := parser.Parse(doc)
			require.NoError(t, err)

			compact := formatter.Compact(x)
			y, err := parser.Parse(compact)
			require.NoError(t, err)

			assert.True(t, models.Equal(x, y))
			if diff := cmp.Diff(x, y, containerOpts); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, compact, formatter.Compact(y))
		})
	}
}

func TestRoundTrip_Pretty(t *testing.T) {
	for _, doc := range documents {
		t.Run(doc, func(t *testing.T) {
			x, err := parser.Parse(doc)
			require.NoError(t, err)

			y, err := parser.Parse(formatter.Pretty(x))
			require.NoError(t, err)
			assert.True(t, models.Equal(x, y))
		})
	}
}

func TestParseThenPretty(t *testing.T) {
	x, err := parser.Parse(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}", formatter.Pretty(x))
}
