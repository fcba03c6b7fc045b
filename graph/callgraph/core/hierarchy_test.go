package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMethodClass_InheritanceSoundness(t *testing.T) {
	h := NewClassHierarchy()
	h.SetParent("C", "P")
	h.AddMethodDef("P", "m")

	owner, ok := h.ResolveMethodClass("C", "m")
	require.True(t, ok)
	assert.Equal(t, "P", owner)
}

func TestResolveMethodClass_TraitShadowsParent(t *testing.T) {
	h := NewClassHierarchy()
	h.SetParent("C", "P")
	h.SetTraits("C", []string{"T"})
	h.AddMethodDef("P", "m")
	h.AddMethodDef("T", "m")

	owner, ok := h.ResolveMethodClass("C", "m")
	require.True(t, ok)
	assert.Equal(t, "T", owner, "trait method must shadow an inherited parent method of the same name")
}

func TestResolveMethodClass_OwnMethodWinsOverTraitAndParent(t *testing.T) {
	h := NewClassHierarchy()
	h.SetParent("C", "P")
	h.SetTraits("C", []string{"T"})
	h.AddMethodDef("P", "m")
	h.AddMethodDef("T", "m")
	h.AddMethodDef("C", "m")

	owner, ok := h.ResolveMethodClass("C", "m")
	require.True(t, ok)
	assert.Equal(t, "C", owner)
}

func TestResolveMethodClass_TraitOnly(t *testing.T) {
	h := NewClassHierarchy()
	h.SetTraits("C", []string{"T"})
	h.AddMethodDef("T", "m")

	owner, ok := h.ResolveMethodClass("C", "m")
	require.True(t, ok)
	assert.Equal(t, "T", owner)
}

func TestResolveMethodClass_NotFound(t *testing.T) {
	h := NewClassHierarchy()
	_, ok := h.ResolveMethodClass("C", "missing")
	assert.False(t, ok)
}

func TestResolveMethodClass_CycleTolerant(t *testing.T) {
	h := NewClassHierarchy()
	h.SetParent("A", "B")
	h.SetParent("B", "A") // malformed cycle

	assert.NotPanics(t, func() {
		_, ok := h.ResolveMethodClass("A", "missing")
		assert.False(t, ok)
	})
}

func TestResolveMethodClassThroughParent_BypassesOwnTraits(t *testing.T) {
	// Open Question (a): parent::m() resolves strictly through the parent
	// chain, bypassing C's own traits, even when a trait of C also defines m.
	h := NewClassHierarchy()
	h.SetParent("C", "P")
	h.SetTraits("C", []string{"T"})
	h.AddMethodDef("T", "m")
	h.AddMethodDef("P", "m")

	owner, ok := h.ResolveMethodClassThroughParent("C", "m")
	require.True(t, ok)
	assert.Equal(t, "P", owner)
}

func TestFindClassesImplementing_InsertionOrder(t *testing.T) {
	h := NewClassHierarchy()
	h.SetInterfaces("Second", []string{"I"})
	h.SetInterfaces("First", []string{"I"})

	assert.Equal(t, []string{"Second", "First"}, h.FindClassesImplementing("I"))
}

func TestFindClassesUsingTrait_InsertionOrder(t *testing.T) {
	h := NewClassHierarchy()
	h.SetTraits("B", []string{"T"})
	h.SetTraits("A", []string{"T"})

	assert.Equal(t, []string{"B", "A"}, h.FindClassesUsingTrait("T"))
}

func TestResolveMethodReturnType_FollowsSameOrder(t *testing.T) {
	h := NewClassHierarchy()
	h.SetParent("C", "P")
	h.AddReturnType("P", "make", "Widget")

	rt, ok := h.ResolveMethodReturnType("C", "make")
	require.True(t, ok)
	assert.Equal(t, "Widget", rt)
}
