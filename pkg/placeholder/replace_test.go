package placeholder_test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-placeholder/pkg/placeholder"
)

func TestNew_InvalidConfiguration(t *testing.T) {
	_, err := placeholder.New("", "}")
	require.ErrorIs(t, err, placeholder.ErrInvalidConfiguration)

	_, err = placeholder.New("${", "")
	require.ErrorIs(t, err, placeholder.ErrInvalidConfiguration)

	assert.Panics(t, func() { placeholder.MustNew("", "") })
}

func TestHelper_Accessors(t *testing.T) {
	h := placeholder.MustNew("${", "}", placeholder.WithValueSeparator(":"), placeholder.WithIgnoreUnresolvable(false))

	assert.Equal(t, "${", h.Prefix())
	assert.Equal(t, "}", h.Suffix())
	assert.Equal(t, "{", h.SimplePrefix())
	sep, ok := h.ValueSeparator()
	assert.True(t, ok)
	assert.Equal(t, ":", sep)
	assert.False(t, h.IgnoreUnresolvable())
}

func TestHelper_Replace(t *testing.T) {
	h := placeholder.MustNew("${", "}", placeholder.WithValueSeparator(":"))

	tests := []struct {
		name  string
		text  string
		props map[string]string
		want  string
	}{
		{
			name: "no placeholder",
			text: "plain text with $ and { }",
			want: "plain text with $ and { }",
		},
		{
			name:  "basic",
			text:  "${foo}",
			props: map[string]string{"foo": "bar"},
			want:  "bar",
		},
		{
			name:  "surrounding text",
			text:  "http://${host}:${port}/api",
			props: map[string]string{"host": "localhost", "port": "8080"},
			want:  "http://localhost:8080/api",
		},
		{
			name: "default fallback",
			text: "${baz:default}",
			want: "default",
		},
		{
			name: "empty default",
			text: "[${baz:}]",
			want: "[]",
		},
		{
			name:  "actual name wins over default",
			text:  "${foo:default}",
			props: map[string]string{"foo": "bar"},
			want:  "bar",
		},
		{
			name:  "default split at first separator",
			text:  "${url:http://localhost:8080}",
			props: map[string]string{},
			want:  "http://localhost:8080",
		},
		{
			name:  "default containing placeholder",
			text:  "${missing:${foo}}",
			props: map[string]string{"foo": "bar"},
			want:  "bar",
		},
		{
			name:  "nested name",
			text:  "${${x}}",
			props: map[string]string{"x": "y", "y": "hello"},
			want:  "hello",
		},
		{
			name:  "composed name",
			text:  "${app.${env}.url}",
			props: map[string]string{"env": "prod", "app.prod.url": "https://prod"},
			want:  "https://prod",
		},
		{
			name:  "value containing placeholder",
			text:  "${greeting}!",
			props: map[string]string{"greeting": "hello ${name}", "name": "world"},
			want:  "hello world!",
		},
		{
			name:  "repeated occurrences",
			text:  "${a}-${a}",
			props: map[string]string{"a": "1"},
			want:  "1-1",
		},
		{
			name:  "same name in sibling branches",
			text:  "${a}",
			props: map[string]string{"a": "${b}-${b}", "b": "x"},
			want:  "x-x",
		},
		{
			name:  "empty value",
			text:  "[${empty}]",
			props: map[string]string{"empty": ""},
			want:  "[]",
		},
		{
			name: "unresolved kept",
			text: "x=${missing}",
			want: "x=${missing}",
		},
		{
			name:  "unresolved kept verbatim with nested name",
			text:  "${foo${x}}",
			props: map[string]string{"x": "y"},
			want:  "${foo${x}}",
		},
		{
			name:  "resolution continues after unresolved",
			text:  "${missing}-${a}",
			props: map[string]string{"a": "1"},
			want:  "${missing}-1",
		},
		{
			name: "empty name",
			text: "${}",
			want: "${}",
		},
		{
			name:  "unterminated",
			text:  "${foo",
			props: map[string]string{"foo": "bar"},
			want:  "${foo",
		},
		{
			name:  "unterminated after resolved",
			text:  "${foo}${bar",
			props: map[string]string{"foo": "1", "bar": "2"},
			want:  "1${bar",
		},
		{
			name:  "spliced text is not rescanned",
			text:  "${a}{b}",
			props: map[string]string{"a": "$", "b": "x"},
			want:  "${b}",
		},
		{
			name:  "longer replacement shifts following placeholders",
			text:  "${a}${b}",
			props: map[string]string{"a": "a-much-longer-value", "b": "!"},
			want:  "a-much-longer-value!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ReplaceProperties(tt.text, tt.props)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelper_Replace_CustomDelimiters(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		suffix string
		text   string
		props  map[string]string
		want   string
	}{
		{
			name:   "brackets",
			prefix: "$[",
			suffix: "]",
			text:   "v=$[a]",
			props:  map[string]string{"a": "1"},
			want:   "v=1",
		},
		{
			name:   "parenthesis nested",
			prefix: "%(",
			suffix: ")",
			text:   "%(a%(b))",
			props:  map[string]string{"b": "x", "ax": "ok"},
			want:   "ok",
		},
		{
			name:   "asymmetric multi char",
			prefix: "<<",
			suffix: ">>",
			text:   "<<a<<b>>>>",
			props:  map[string]string{"b": "c", "ac": "d"},
			want:   "d",
		},
		{
			name:   "single brace",
			prefix: "{",
			suffix: "}",
			text:   "{{inner}}",
			props:  map[string]string{"inner": "name", "name": "v"},
			want:   "v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := placeholder.MustNew(tt.prefix, tt.suffix)
			got, err := h.ReplaceProperties(tt.text, tt.props)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelper_Replace_CircularReference(t *testing.T) {
	h := placeholder.MustNew("${", "}")

	tests := []struct {
		name  string
		text  string
		props map[string]string
		want  string
	}{
		{
			name:  "two step cycle",
			text:  "${a}",
			props: map[string]string{"a": "${b}", "b": "${a}"},
			want:  "a",
		},
		{
			name:  "self reference",
			text:  "x ${a}",
			props: map[string]string{"a": "-${a}-"},
			want:  "a",
		},
		{
			name:  "cycle through name",
			text:  "${a}",
			props: map[string]string{"a": "${${k}}", "k": "a"},
			want:  "${k}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ReplaceProperties(tt.text, tt.props)
			require.ErrorIs(t, err, placeholder.ErrCircularReference)
			assert.Empty(t, got)

			var circular *placeholder.CircularReferenceError
			require.ErrorAs(t, err, &circular)
			assert.Equal(t, tt.want, circular.Placeholder)
			assert.Contains(t, err.Error(), "circular placeholder reference")
		})
	}
}

// 循环检测基于占位符原始文本，而不是展开后的名称。
func TestHelper_Replace_CycleGuardUsesLiteralText(t *testing.T) {
	h := placeholder.MustNew("${", "}")

	calls := 0
	resolver := placeholder.ResolverFunc(func(name string) (string, bool) {
		switch name {
		case "x":
			return "a", true
		case "a":
			calls++
			if calls == 1 {
				return "${${x}}", true
			}
			return "end", true
		}
		return "", false
	})

	got, err := h.Replace("${a}", resolver)
	require.NoError(t, err)
	assert.Equal(t, "end", got)
	assert.Equal(t, 2, calls)
}

func TestHelper_Replace_Unresolvable(t *testing.T) {
	h := placeholder.MustNew("${", "}",
		placeholder.WithValueSeparator(":"),
		placeholder.WithIgnoreUnresolvable(false),
	)

	tests := []struct {
		name      string
		text      string
		props     map[string]string
		wantName  string
		wantValue string
	}{
		{
			name:      "top level",
			text:      "x=${missing}",
			wantName:  "missing",
			wantValue: "x=${missing}",
		},
		{
			name:      "inside resolved value",
			text:      "${a}",
			props:     map[string]string{"a": "v=${b}"},
			wantName:  "b",
			wantValue: "v=${b}",
		},
		{
			name:      "reported with resolved name",
			text:      "${foo${x}}",
			props:     map[string]string{"x": "y"},
			wantName:  "fooy",
			wantValue: "${foo${x}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ReplaceProperties(tt.text, tt.props)
			require.ErrorIs(t, err, placeholder.ErrUnresolvable)
			assert.Empty(t, got)

			var unresolvable *placeholder.UnresolvableError
			require.ErrorAs(t, err, &unresolvable)
			assert.Equal(t, tt.wantName, unresolvable.Placeholder)
			assert.Equal(t, tt.wantValue, unresolvable.Value)
		})
	}

	got, err := h.ReplaceProperties("${missing:fallback}", nil)
	require.NoError(t, err, "default value satisfies strict mode")
	assert.Equal(t, "fallback", got)
}

func TestHelper_Replace_NilResolver(t *testing.T) {
	h := placeholder.MustNew("${", "}")

	_, err := h.Replace("${a}", nil)
	require.ErrorIs(t, err, placeholder.ErrNilResolver)
}

func TestHelper_Replace_Idempotent(t *testing.T) {
	h := placeholder.MustNew("${", "}")
	props := placeholder.MapResolver{"a": "1", "b": "${a}2"}

	v1, err := h.Replace("${a}-${b}", props)
	require.NoError(t, err)
	assert.Equal(t, "1-12", v1)

	v2, err := h.Replace(v1, props)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestHelper_Replace_NoPrefixNeverQueriesResolver(t *testing.T) {
	h := placeholder.MustNew("${", "}")
	resolver := placeholder.ResolverFunc(func(name string) (string, bool) {
		t.Fatalf("unexpected lookup of %q", name)
		return "", false
	})

	for _, text := range []string{"", "abc", "{a}", "$a", "}${"} {
		got, err := h.Replace(text, resolver)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestHelper_Replace_Concurrent(t *testing.T) {
	h := placeholder.MustNew("${", "}", placeholder.WithValueSeparator(":"))

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := fmt.Sprintf("id-%d", i)
			props := map[string]string{"id": fmt.Sprint(i), "name": "id-${id}"}
			got, err := h.ReplaceProperties("${name}", props)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("got " + got + ", want " + want)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestHelper_Replace_WithoutSeparator(t *testing.T) {
	tests := []struct {
		name string
		opts []placeholder.Option
	}{
		{name: "not configured"},
		{name: "empty separator", opts: []placeholder.Option{placeholder.WithValueSeparator("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := placeholder.MustNew("${", "}", tt.opts...)

			got, err := h.ReplaceProperties("v=${baz:default}", nil)
			require.NoError(t, err)
			assert.Equal(t, "v=${baz:default}", got, "no default value syntax without a separator")

			got, err = h.ReplaceProperties("${baz:default}", map[string]string{"baz:default": "whole"})
			require.NoError(t, err)
			assert.Equal(t, "whole", got, "the full text is the name")
		})
	}
}

// nested 返回 depth 层嵌套的占位符，最内层为 ${x}。
func nested(depth int) string {
	return strings.Repeat("${", depth) + "x" + strings.Repeat("}", depth)
}

// chain 返回 key0..keyN 的属性链，每个值引用下一个 key fanout 次。
func chain(n, fanout int, last string) map[string]string {
	props := make(map[string]string, n+1)
	for i := range n {
		props["k"+strconv.Itoa(i)] = strings.Repeat("${k"+strconv.Itoa(i+1)+"}", fanout)
	}
	props["k"+strconv.Itoa(n)] = last

	return props
}

func TestHelper_Replace_Limits(t *testing.T) {
	tests := []struct {
		name      string
		opts      []placeholder.Option
		text      string
		props     map[string]string
		wantLimit string
	}{
		{
			name:      "nested names",
			opts:      []placeholder.Option{placeholder.WithMaxDepth(64)},
			text:      nested(10000),
			wantLimit: placeholder.LimitDepth,
		},
		{
			name:      "nested values",
			opts:      []placeholder.Option{placeholder.WithMaxDepth(64)},
			text:      "${k0}",
			props:     chain(100, 1, "end"),
			wantLimit: placeholder.LimitDepth,
		},
		{
			name:      "fan out with empty leaves",
			opts:      []placeholder.Option{placeholder.WithMaxResolutions(1000)},
			text:      "${k0}",
			props:     chain(40, 2, ""),
			wantLimit: placeholder.LimitResolutions,
		},
		{
			name:      "fan out with growing output",
			opts:      []placeholder.Option{placeholder.WithMaxLength(1 << 16)},
			text:      "${k0}",
			props:     chain(40, 2, "xxxxxxxx"),
			wantLimit: placeholder.LimitLength,
		},
		{
			name:      "literal text counts toward length",
			opts:      []placeholder.Option{placeholder.WithMaxLength(8)},
			text:      "${a} and more",
			props:     map[string]string{"a": "1"},
			wantLimit: placeholder.LimitLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := placeholder.MustNew("${", "}", tt.opts...)

			got, err := h.ReplaceProperties(tt.text, tt.props)
			require.ErrorIs(t, err, placeholder.ErrLimitExceeded)
			assert.Empty(t, got)

			var limitErr *placeholder.LimitExceededError
			require.ErrorAs(t, err, &limitErr)
			assert.Equal(t, tt.wantLimit, limitErr.Limit)
		})
	}
}

func TestHelper_Replace_WithinLimits(t *testing.T) {
	h := placeholder.MustNew("${", "}",
		placeholder.WithMaxDepth(64),
		placeholder.WithMaxResolutions(100),
		placeholder.WithMaxLength(256),
	)

	got, err := h.ReplaceProperties(nested(64), nil)
	require.NoError(t, err)
	assert.Equal(t, nested(64), got)

	got, err = h.ReplaceProperties("${k0}", chain(63, 1, "end"))
	require.NoError(t, err)
	assert.Equal(t, "end", got)

	got, err = h.ReplaceProperties("${k0}", chain(4, 2, "ab"))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ab", 16), got)
}

func TestHelper_Replace_UnlimitedByDefault(t *testing.T) {
	h := placeholder.MustNew("${", "}")

	got, err := h.ReplaceProperties("${k0}", chain(200, 1, "end"))
	require.NoError(t, err)
	assert.Equal(t, "end", got)
}
