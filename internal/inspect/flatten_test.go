package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	in := "{\n  \"model\": \"gpt-4\",\n  \"stop\": [\"a b\"]\n}"
	assert.Equal(t, "%7B%20%22model%22%3A%20%22gpt-4%22%2C%20%22stop%22%3A%20%5B%22a%20b%22%5D%20%7D", Flatten(in))
	assert.Equal(t, "it's-(ok)_~*!.", Flatten("it's-(ok)_~*!."))
	assert.Equal(t, "h%C3%A9", Flatten("hé"))
	assert.Equal(t, "", Flatten(" \n\t "))
}

func TestUnflattenRoundTrip(t *testing.T) {
	in := `{"model":"gpt-4","messages":[{"role":"user","content":"a+b"}]}`
	out, err := Unflatten(Flatten(in))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"model\": \"gpt-4\",\n  \"messages\": [\n    {\n      \"role\": \"user\",\n      \"content\": \"a+b\"\n    }\n  ]\n}", out)
}

func TestUnflattenErrors(t *testing.T) {
	_, err := Unflatten("%7B%zz")
	require.Error(t, err)

	_, err = Unflatten("%7B%22model%22%3A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestFormatRejectsNonJSON(t *testing.T) {
	for _, bad := range []string{`{"n":0100}`, "{\"s\":\"a\nb\"}", "{}\x00", "{"} {
		_, err := Format(bad)
		assert.Error(t, err, bad)
	}
}
