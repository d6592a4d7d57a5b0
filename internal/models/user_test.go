package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleEditor))
	assert.True(t, IsValidRole(RoleRequester))
	assert.True(t, IsValidRole(RoleField))
	assert.False(t, IsValidRole(Role("manager")))
	assert.False(t, IsValidRole(Role("")))
}

func TestHasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	editor := &User{Role: RoleEditor}
	requester := &User{Role: RoleRequester}
	field := &User{Role: RoleField}
	unknown := &User{Role: Role("ghost")}

	assert.True(t, admin.HasPermission("manage_users"))
	assert.True(t, admin.HasPermission("anything_at_all"))

	assert.True(t, editor.HasPermission("allocate_resources"))
	assert.False(t, editor.HasPermission("manage_users"))

	assert.True(t, requester.HasPermission("submit_request"))
	assert.True(t, requester.HasPermission("view_events"))
	assert.False(t, requester.HasPermission("allocate_resources"))

	assert.True(t, field.HasPermission("report_location"))
	assert.True(t, field.HasPermission("upload_media"))
	assert.False(t, field.HasPermission("submit_request"))

	assert.False(t, unknown.HasPermission("view_events"))
}

func TestHasExpertise(t *testing.T) {
	r := &Resource{Expertise: []string{"sports", "politics"}}
	assert.True(t, r.HasExpertise("sports"))
	assert.False(t, r.HasExpertise("culture"))
	assert.False(t, (&Resource{}).HasExpertise("sports"))
}
