package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverDirect(t *testing.T) {
	obj, ok := recoverDirect(`  {"action":"query"}  `)
	assert.True(t, ok)
	assert.Equal(t, "query", obj["action"])

	for _, raw := range []string{
		"no json here",
		`[{"action":"query"}]`,
		`{"action":"query"} trailing`,
		"```json\n{\"action\":\"query\"}\n```",
		"null",
	} {
		_, ok := recoverDirect(raw)
		assert.False(t, ok, raw)
	}
}

func TestRecoverFenced(t *testing.T) {
	tests := map[string]string{
		"json fence":         "```json\n{\"action\":\"delete\"}\n```",
		"bare fence":         "```\n{\"action\":\"delete\"}\n```",
		"inline fence":       "```{\"action\":\"delete\"}```",
		"prose around fence": "Sure! Here you go:\n```json\n{\"action\":\"delete\"}\n```\nAnything else?",
		"unterminated fence": "```json\n{\"action\":\"delete\"}\n",
		"second block valid": "```text\nnot json\n```\n```json\n{\"action\":\"delete\"}\n```",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			obj, ok := recoverFenced(raw)
			assert.True(t, ok)
			assert.Equal(t, "delete", obj["action"])
		})
	}

	_, ok := recoverFenced("no fences at all {\"action\":\"delete\"}")
	assert.False(t, ok)
}

func TestRecoverBraceScan(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want string
	}{
		"prose prefix":          {raw: `I will create it: {"action":"create","message":"ok"} done`, want: "create"},
		"nested objects":        {raw: `x {"action":"update","updates":{"title":"a"}} y`, want: "update"},
		"braces inside strings": {raw: `{"action":"query","message":"use } and { freely"}`, want: "query"},
		"escaped quotes":        {raw: `{"action":"query","message":"say \"hi}\" now"}`, want: "query"},
		"skips invalid first":   {raw: `{not json} then {"action":"delete"}`, want: "delete"},
		"quote in prose before": {raw: `He said "let's go {"action":"delete"}`, want: "delete"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			obj, ok := recoverBraceScan(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, obj["action"])
		})
	}

	for _, raw := range []string{
		"no json here",
		"{ unbalanced",
		"}{",
		"",
		`[{"action":"delete","event_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}]`,
		`  [{"action":"query"}, {"action":"delete"}]  `,
		`"{\"action\":\"delete\"}"`,
	} {
		_, ok := recoverBraceScan(raw)
		assert.False(t, ok, raw)
	}
}
