package authority

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesRealmOnly(t *testing.T) {
	claims := jwt.MapClaims{
		"scope": "openid profile",
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"ADMIN"},
		},
	}

	roles := Roles(claims, "qypym-backend")

	assert.True(t, roles.Contains("ROLE_ADMIN"))
	assert.True(t, roles.Contains("SCOPE_openid"))
	assert.True(t, roles.Contains("SCOPE_profile"))
	assert.Equal(t, 3, roles.Cardinality())
}

func TestRolesNoRoleClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"scope": "openid",
	}

	roles := Roles(claims, "qypym-backend")

	assert.True(t, roles.Equal(DefaultAuthorities(claims)))
	assert.Equal(t, 1, roles.Cardinality())
}

func TestRolesClientAndRealmUnion(t *testing.T) {
	claims := jwt.MapClaims{
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"user", "admin"},
		},
		"resource_access": map[string]interface{}{
			"qypym-backend": map[string]interface{}{
				"roles": []interface{}{"admin", "organizer"},
			},
			"other-client": map[string]interface{}{
				"roles": []interface{}{"ignored"},
			},
		},
	}

	roles := Roles(claims, "qypym-backend")

	assert.True(t, roles.Contains("ROLE_USER"))
	assert.True(t, roles.Contains("ROLE_ADMIN"))
	assert.True(t, roles.Contains("ROLE_ORGANIZER"))
	assert.False(t, roles.Contains("ROLE_IGNORED"))
	// admin appears in both claims but the set collapses it.
	assert.Equal(t, 3, roles.Cardinality())
}

func TestRolesMalformedClaimsContributeNothing(t *testing.T) {
	claims := jwt.MapClaims{
		"realm_access":    "not-an-object",
		"resource_access": []interface{}{"not", "an", "object"},
	}

	roles := Roles(claims, "qypym-backend")

	assert.Equal(t, 0, roles.Cardinality())
}

func TestValidateClaimShapes(t *testing.T) {
	good := jwt.MapClaims{
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"user"},
		},
		"resource_access": map[string]interface{}{
			"qypym-backend": map[string]interface{}{
				"roles": []interface{}{"admin"},
			},
		},
	}
	require.NoError(t, ValidateClaimShapes(good, "qypym-backend"))

	require.NoError(t, ValidateClaimShapes(jwt.MapClaims{}, "qypym-backend"))

	bad := jwt.MapClaims{
		"realm_access": map[string]interface{}{
			"roles": "admin",
		},
	}
	require.Error(t, ValidateClaimShapes(bad, "qypym-backend"))

	badNested := jwt.MapClaims{
		"resource_access": map[string]interface{}{
			"qypym-backend": map[string]interface{}{
				"roles": []interface{}{42},
			},
		},
	}
	require.Error(t, ValidateClaimShapes(badNested, "qypym-backend"))
}
