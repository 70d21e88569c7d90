// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tintero-app/tintero/internal/platform/sec"
)

/*
TestRole_AtLeast checks the role hierarchy: admin passes every gate, author
passes client gates, and unknown roles pass none.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.Role
		target sec.Role
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_author", sec.RoleAdmin, sec.RoleAuthor, true},
		{"admin_meets_client", sec.RoleAdmin, sec.RoleClient, true},
		{"author_below_admin", sec.RoleAuthor, sec.RoleAdmin, false},
		{"author_meets_author", sec.RoleAuthor, sec.RoleAuthor, true},
		{"author_meets_client", sec.RoleAuthor, sec.RoleClient, true},
		{"client_below_author", sec.RoleClient, sec.RoleAuthor, false},
		{"client_meets_client", sec.RoleClient, sec.RoleClient, true},
		{"unknown_below_client", sec.Role("moderator"), sec.RoleClient, false},
		{"empty_below_client", sec.Role(""), sec.RoleClient, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestRole_Predicates checks the exact-match helpers used in workflow code.
*/
func TestRole_Predicates(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsAdmin())
	assert.False(t, sec.RoleAuthor.IsAdmin())

	assert.True(t, sec.RoleAuthor.IsAuthor())
	assert.False(t, sec.RoleAdmin.IsAuthor())
	assert.False(t, sec.Role("").IsAuthor())
}

/*
TestAuthClaims_UserRole checks the claim-to-role conversion.
*/
func TestAuthClaims_UserRole(t *testing.T) {
	claims := &sec.AuthClaims{Role: "author"}
	assert.Equal(t, sec.RoleAuthor, claims.UserRole())
	assert.True(t, claims.UserRole().AtLeast(sec.RoleClient))
}
