package services

import (
	"campus/contexts/identity-access/authorization-service/domain/entities"
)

// capabilityRoles is the static role policy table. It is evaluated before any
// ownership check; a role absent from a capability's set is rejected without
// ever touching resource state.
var capabilityRoles = map[entities.Capability]map[entities.Role]struct{}{
	entities.CapabilityManageAccounts:  {entities.RoleAdmin: {}},
	entities.CapabilityCreateClassroom: {entities.RoleAdmin: {}},
	entities.CapabilityDeleteClassroom: {entities.RoleAdmin: {}},
	entities.CapabilityReadClassroom: {
		entities.RoleAdmin:     {},
		entities.RoleProfessor: {},
		entities.RoleStudent:   {},
	},
	entities.CapabilityManageTask: {
		entities.RoleAdmin:     {},
		entities.RoleProfessor: {},
	},
	entities.CapabilityManageMaterial: {
		entities.RoleAdmin:     {},
		entities.RoleProfessor: {},
	},
	entities.CapabilityReadMaterial: {
		entities.RoleAdmin:     {},
		entities.RoleProfessor: {},
		entities.RoleStudent:   {},
	},
	entities.CapabilityCreateSubmission:    {entities.RoleStudent: {}},
	entities.CapabilityDeleteOwnSubmission: {entities.RoleStudent: {}},
	entities.CapabilityReadSubmission: {
		entities.RoleAdmin:     {},
		entities.RoleProfessor: {},
		entities.RoleStudent:   {},
	},
	entities.CapabilityGradeSubmission: {entities.RoleProfessor: {}},
	entities.CapabilityManageRoster: {
		entities.RoleAdmin:     {},
		entities.RoleProfessor: {},
	},
}

// Allows reports whether the role's baseline capability set contains the
// capability. Ownership restrictions on top of the baseline are the ownership
// oracle's job, not this table's.
func Allows(role entities.Role, capability entities.Capability) bool {
	roles, ok := capabilityRoles[capability]
	if !ok {
		return false
	}
	_, allowed := roles[role]
	return allowed
}
