package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindUsesCounterSuffix(t *testing.T) {
	ns := New()

	assert.Equal(t, ParamName("age_0"), ns.Bind("age", 18))
	assert.Equal(t, ParamName("age_1"), ns.Bind("age", 18))
	assert.Equal(t, ParamName("users_email_2"), ns.Bind("users.email", "a@b.com"))
	assert.Equal(t, ParamName("p_3"), ns.Bind("", nil))

	assert.Equal(t, Bindings{
		{Name: "age_0", Value: 18},
		{Name: "age_1", Value: 18},
		{Name: "users_email_2", Value: "a@b.com"},
		{Name: "p_3", Value: nil},
	}, ns.Bindings())
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"age":        "age",
		"users.age":  "users_age",
		"COUNT(*)":   "COUNT___",
		"first name": "first_name",
		"":           "p",
		"naïve":      "na_ve",
	}
	for in, want := range tests {
		assert.Equal(t, want, Sanitize(in), in)
	}
}

func TestScopePrefixes(t *testing.T) {
	root := New()
	first := root.Scope()
	second := root.Scope()
	nested := first.Scope()

	assert.Equal(t, "s1_", first.Prefix())
	assert.Equal(t, "s2_", second.Prefix())
	assert.Equal(t, "s1_s1_", nested.Prefix())
	assert.Equal(t, ParamName("s1_status_0"), first.Bind("status", "active"))
}

func TestMergeWithoutCollision(t *testing.T) {
	root := New()
	root.Bind("age", 18)

	child := root.Scope()
	child.Bind("status", "active")

	renamed := root.Merge(child)
	assert.Nil(t, renamed)
	assert.Equal(t, Bindings{
		{Name: "age_0", Value: 18},
		{Name: "s1_status_1", Value: "active"},
	}.Names(), root.Bindings().Names())
}

func TestMergeRenamesOnCollision(t *testing.T) {
	root := New()
	// a hint that sanitizes to the child's prefixed name
	require.Equal(t, ParamName("s1_status_0"), root.Bind("s1.status", "parent"))

	child := root.Scope()
	require.Equal(t, ParamName("s1_status_0"), child.Bind("status", "child"))

	renamed := root.Merge(child)
	require.Len(t, renamed, 1)
	assert.Equal(t, ParamName("s1_status_0_1"), renamed["s1_status_0"])

	bs := root.Bindings()
	require.Len(t, bs, 2)
	v, ok := bs.Lookup("s1_status_0")
	require.True(t, ok)
	assert.Equal(t, "parent", v)
	v, ok = bs.Lookup("s1_status_0_1")
	require.True(t, ok)
	assert.Equal(t, "child", v)
}

func TestBindSkipsNamesTakenByMerge(t *testing.T) {
	root := New()
	child := New()
	child.Bind("x", 1)
	child.Bind("x", 2)
	child.Bind("x", 3) // x_2

	root.Merge(child)
	// counter is 3 now; x_3 is free
	assert.Equal(t, ParamName("x_3"), root.Bind("x", 4))

	other := New()
	other.Merge(&Namespace{entries: Bindings{{Name: "y_1", Value: 1}}, index: map[ParamName]struct{}{"y_1": {}}})
	// counter would produce y_1, which is taken
	assert.Equal(t, ParamName("y_2"), other.Bind("y", 2))
}

func TestNamesArePairwiseDistinct(t *testing.T) {
	root := New()
	for i := 0; i < 5; i++ {
		root.Bind("id", i)
	}
	for i := 0; i < 3; i++ {
		child := root.Scope()
		for j := 0; j < 4; j++ {
			child.Bind("id", j)
		}
		root.Merge(child)
	}

	seen := map[ParamName]bool{}
	for _, b := range root.Bindings() {
		assert.False(t, seen[b.Name], "duplicate %s", b.Name)
		seen[b.Name] = true
	}
	assert.Len(t, seen, 17)
}

func TestReset(t *testing.T) {
	ns := New()
	ns.Bind("a", 1)
	ns.Scope()
	ns.Reset()

	assert.Equal(t, 0, ns.Len())
	assert.Equal(t, ParamName("a_0"), ns.Bind("a", 2))
	assert.Equal(t, "s1_", ns.Scope().Prefix())
}

func TestBindingsMap(t *testing.T) {
	bs := Bindings{{Name: "a_0", Value: 1}, {Name: "b_1", Value: "x"}}
	assert.Equal(t, map[string]any{"a_0": 1, "b_1": "x"}, bs.Map())
}
