// Package authority converts identity-provider token claims into the role set
// downstream request handling trusts. Signature and expiry checks happen
// upstream; this package is a pure function of the decoded claims.
package authority

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang-jwt/jwt/v5"
)

const rolePrefix = "ROLE_"

// Roles returns the deduplicated authority set for the caller: the token's
// default scope authorities, plus realm roles, plus the roles granted for the
// one client this deployment trusts. Absent claims contribute nothing and
// never produce an error.
func Roles(claims jwt.MapClaims, clientID string) mapset.Set[string] {
	authorities := DefaultAuthorities(claims)

	for _, role := range realmRoles(claims) {
		authorities.Add(normalize(role))
	}
	for _, role := range clientRoles(claims, clientID) {
		authorities.Add(normalize(role))
	}

	return authorities
}

// DefaultAuthorities derives the scope-based authorities the token carries on
// its own, independent of any role mapping.
func DefaultAuthorities(claims jwt.MapClaims) mapset.Set[string] {
	authorities := mapset.NewSet[string]()

	scope, ok := claims["scope"].(string)
	if !ok {
		return authorities
	}
	for _, s := range strings.Fields(scope) {
		authorities.Add("SCOPE_" + s)
	}
	return authorities
}

// ValidateClaimShapes checks that the role-bearing claims, when present, have
// the list-of-strings shape the bridge expects. It is meant to run once at
// startup against a token issued by the configured provider; a malformed
// shape there is a configuration error, not a per-request condition.
func ValidateClaimShapes(claims jwt.MapClaims, clientID string) error {
	if realm, ok := claims["realm_access"]; ok {
		if err := validateRolesContainer(realm); err != nil {
			return fmt.Errorf("realm_access: %w", err)
		}
	}

	resource, ok := claims["resource_access"].(map[string]interface{})
	if !ok {
		if _, present := claims["resource_access"]; present {
			return fmt.Errorf("resource_access: expected object, got %T", claims["resource_access"])
		}
		return nil
	}
	if client, ok := resource[clientID]; ok {
		if err := validateRolesContainer(client); err != nil {
			return fmt.Errorf("resource_access.%s: %w", clientID, err)
		}
	}
	return nil
}

func validateRolesContainer(container interface{}) error {
	obj, ok := container.(map[string]interface{})
	if !ok {
		return fmt.Errorf("expected object, got %T", container)
	}
	roles, ok := obj["roles"]
	if !ok {
		return nil
	}
	list, ok := roles.([]interface{})
	if !ok {
		return fmt.Errorf("expected roles list, got %T", roles)
	}
	for _, r := range list {
		if _, ok := r.(string); !ok {
			return fmt.Errorf("expected string role, got %T", r)
		}
	}
	return nil
}

func realmRoles(claims jwt.MapClaims) []string {
	realm, ok := claims["realm_access"].(map[string]interface{})
	if !ok {
		return nil
	}
	return stringList(realm["roles"])
}

func clientRoles(claims jwt.MapClaims, clientID string) []string {
	resource, ok := claims["resource_access"].(map[string]interface{})
	if !ok {
		return nil
	}
	client, ok := resource[clientID].(map[string]interface{})
	if !ok {
		return nil
	}
	return stringList(client["roles"])
}

func stringList(value interface{}) []string {
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func normalize(role string) string {
	return rolePrefix + strings.ToUpper(role)
}
