package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
)

func TestParsePrivilege(t *testing.T) {
	for _, name := range []string{"READ", "CREATE", "UPDATE", "DELETE"} {
		p, err := ParsePrivilege(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.String())
	}

	_, err := ParsePrivilege("read")
	assert.True(t, dErrors.Has(err, dErrors.CodeInvalidInput), "enum names are case sensitive")
	_, err = ParsePrivilege("")
	assert.True(t, dErrors.Has(err, dErrors.CodeInvalidInput))
}

func TestParseDatasetState(t *testing.T) {
	for _, name := range []string{"RAW", "INPUT", "PROCESSED", "OUTPUT", "OTHER"} {
		st, err := ParseDatasetState(name)
		require.NoError(t, err)
		assert.Equal(t, name, st.String())
	}

	_, err := ParseDatasetState("ARCHIVED")
	assert.True(t, dErrors.Has(err, dErrors.CodeInvalidInput))
}

func TestRoleValidate(t *testing.T) {
	valid := &Role{
		RoleID:       "reader",
		Privileges:   CriterionSet[Privilege]{Includes: []Privilege{PrivilegeRead}},
		MaxValuation: ValuationInternal,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		role *Role
	}{
		{"nil role", nil},
		{"missing id", &Role{MaxValuation: ValuationOpen}},
		{"invalid valuation", &Role{RoleID: "r", MaxValuation: "LOUD"}},
		{"invalid privilege include", &Role{RoleID: "r", MaxValuation: ValuationOpen,
			Privileges: CriterionSet[Privilege]{Includes: []Privilege{"PEEK"}}}},
		{"invalid state exclude", &Role{RoleID: "r", MaxValuation: ValuationOpen,
			States: CriterionSet[DatasetState]{Excludes: []DatasetState{"GONE"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.role.Validate())
		})
	}
}
