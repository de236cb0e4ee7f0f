package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cords_connector/internal/models"
	"cords_connector/internal/policy"
)

type fakeEngine struct {
	permissions   []policy.Permission
	flPermissions []policy.Permission
	err           error
}

func (f *fakeEngine) Compile(resourceID string) ([]policy.Permission, []policy.Permission, error) {
	return f.permissions, f.flPermissions, f.err
}

func offerOf(t *testing.T, doc map[string]interface{}) map[string]interface{} {
	t.Helper()
	offers, ok := doc["ids:contractOffer"].([]interface{})
	require.True(t, ok, "description has no ids:contractOffer list")
	require.Len(t, offers, 1)
	offer, ok := offers[0].(map[string]interface{})
	require.True(t, ok)
	return offer
}

func TestAttachContractRebindsTargets(t *testing.T) {
	engine := &fakeEngine{permissions: []policy.Permission{
		{"@id": "perm-1", "ids:target": map[string]interface{}{"@id": "template-placeholder"}},
		{"@id": "perm-2"},
	}}
	compiler := NewCompiler(engine)

	doc, err := compiler.AttachContract("r1", map[string]interface{}{})
	require.NoError(t, err)

	offer := offerOf(t, doc)
	assert.Equal(t, "ids:ContractOffer", offer["@type"])

	perms, ok := offer["ids:permission"].([]policy.Permission)
	require.True(t, ok)
	require.Len(t, perms, 2)
	for _, perm := range perms {
		target := perm["ids:target"].(map[string]interface{})
		assert.Equal(t, "http://w3id.org/engrd/connector/artifact/cords/r1", target["@id"])
	}
}

func TestAttachContractEmptyPoliciesYieldsEmptyOffer(t *testing.T) {
	compiler := NewCompiler(&fakeEngine{
		permissions:   []policy.Permission{},
		flPermissions: []policy.Permission{},
	})

	doc, err := compiler.AttachContract("r1", map[string]interface{}{})
	require.NoError(t, err)

	offer := offerOf(t, doc)
	perms, ok := offer["ids:permission"].([]policy.Permission)
	require.True(t, ok)
	assert.Empty(t, perms)
	assert.NotContains(t, doc, "cords:flPolicies")
}

func TestAttachContractTimestampsAndFreshIDs(t *testing.T) {
	compiler := NewCompiler(&fakeEngine{permissions: []policy.Permission{}})

	first, err := compiler.AttachContract("r1", map[string]interface{}{})
	require.NoError(t, err)
	second, err := compiler.AttachContract("r1", map[string]interface{}{})
	require.NoError(t, err)

	firstOffer := offerOf(t, first)
	secondOffer := offerOf(t, second)
	assert.NotEqual(t, firstOffer["@id"], secondOffer["@id"])
	assert.Contains(t, firstOffer["@id"], "https://w3id.org/idsa/autogen/contractOffer/")

	start := firstOffer["ids:contractStart"].(map[string]interface{})
	stamp, ok := start["@value"].(string)
	require.True(t, ok)
	_, err = time.Parse(models.ISOMillis, stamp)
	assert.NoError(t, err, "contractStart is not ISO-8601 with milliseconds")
	date := firstOffer["ids:contractDate"].(map[string]interface{})
	assert.Equal(t, stamp, date["@value"])
}

func TestAttachContractFLPoliciesRideOutsideOffer(t *testing.T) {
	compiler := NewCompiler(&fakeEngine{
		permissions:   []policy.Permission{},
		flPermissions: []policy.Permission{{"@id": "fl-perm"}},
	})

	doc, err := compiler.AttachContract("r9", map[string]interface{}{})
	require.NoError(t, err)

	flPerms, ok := doc["cords:flPolicies"].([]policy.Permission)
	require.True(t, ok)
	require.Len(t, flPerms, 1)
	target := flPerms[0]["ids:target"].(map[string]interface{})
	assert.Equal(t, ArtifactURI("r9"), target["@id"])

	offer := offerOf(t, doc)
	perms := offer["ids:permission"].([]policy.Permission)
	assert.Empty(t, perms)
}

func TestArtifactURI(t *testing.T) {
	assert.Equal(t, "http://w3id.org/engrd/connector/artifact/cords/abc123", ArtifactURI("abc123"))
}
