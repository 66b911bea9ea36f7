package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownKind(t *testing.T) {
	kinds := DefaultKinds()

	k, err := kinds.Lookup("post")
	require.NoError(t, err)
	assert.Equal(t, "linkedin_post.js", k.Script)
	assert.True(t, k.RequiresApproval)
}

func TestLookupUnknownKind(t *testing.T) {
	kinds := DefaultKinds()

	_, err := kinds.Lookup("tweet")
	require.Error(t, err)

	var unkind *UnsupportedKindError
	assert.ErrorAs(t, err, &unkind)
	assert.Equal(t, "tweet", unkind.Kind)
}

func TestLookupNilSet(t *testing.T) {
	var kinds KindSet

	_, err := kinds.Lookup("post")
	var unkind *UnsupportedKindError
	assert.ErrorAs(t, err, &unkind)
}

func TestGatedForMatchesByCapability(t *testing.T) {
	kinds := DefaultKinds()
	agent := &Agent{Capabilities: []string{"linkedin_post"}}

	k, ok := kinds.GatedFor(agent)
	require.True(t, ok)
	assert.Equal(t, "post", k.Name)
}

func TestGatedForDefaultsWithoutMatchingCapability(t *testing.T) {
	kinds := DefaultKinds()
	// Capabilities pick the kind; they never gate the draft. An agent with
	// no matching capability still drafts the default gated kind.
	for _, caps := range [][]string{{"research"}, {"linkedin_comment"}, nil} {
		agent := &Agent{Capabilities: caps}

		k, ok := kinds.GatedFor(agent)
		require.True(t, ok, "capabilities %v", caps)
		assert.Equal(t, "post", k.Name)
	}
}

func TestGatedForNoGatedKindRegistered(t *testing.T) {
	kinds := KindSet{
		"comment": {Name: "comment", Script: "c.js", RequiresApproval: false},
	}
	agent := &Agent{Capabilities: []string{"linkedin_comment"}}

	_, ok := kinds.GatedFor(agent)
	assert.False(t, ok)
}

func TestFirstPreApproved(t *testing.T) {
	kinds := DefaultKinds()

	commenter := &Agent{Capabilities: []string{"linkedin_comment"}}
	k, ok := kinds.FirstPreApproved(commenter)
	require.True(t, ok)
	assert.Equal(t, "comment", k.Name)
	assert.False(t, k.RequiresApproval)

	poster := &Agent{Capabilities: []string{"linkedin_post"}}
	_, ok = kinds.FirstPreApproved(poster)
	assert.False(t, ok)
}

func TestHasCapabilityContainment(t *testing.T) {
	agent := &Agent{Capabilities: []string{"linkedin_post", "research"}}

	assert.True(t, agent.HasCapability("post"))
	assert.True(t, agent.HasCapability("research"))
	assert.False(t, agent.HasCapability("comment"))
}
