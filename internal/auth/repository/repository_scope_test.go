package repository

import (
	"strings"
	"testing"
)

func TestListUsersByOrganizationQueryIsTenantScoped(t *testing.T) {
	query := strings.ToLower(listUsersByOrganizationQuery)

	requiredFragments := []string{
		"from users",
		"where organization_id = $1",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected tenant-scoped query fragment %q to be present", fragment)
		}
	}
}

func TestGetRefreshTokenQuerySkipsRevokedTokens(t *testing.T) {
	query := strings.ToLower(getRefreshTokenQuery)

	if !strings.Contains(query, "revoked_at is null") {
		t.Fatal("refresh token lookup must exclude revoked tokens")
	}
}

func TestUserLookupIsCaseInsensitive(t *testing.T) {
	query := strings.ToLower(getUserByEmailQuery)

	if !strings.Contains(query, "lower(email) = lower($1)") {
		t.Fatal("email lookup should be case-insensitive")
	}
}
