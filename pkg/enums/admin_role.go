package enums

import (
	"fmt"
	"strings"
)

// AdminRole is the single role carried by every account, customers included.
type AdminRole string

const (
	AdminRoleOwner       AdminRole = "owner"
	AdminRoleSuperAdmin  AdminRole = "super_admin"
	AdminRoleSubAdmin    AdminRole = "sub_admin"
	AdminRoleStorekeeper AdminRole = "storekeeper"
	AdminRoleSalesperson AdminRole = "salesperson"
	AdminRoleCustomer    AdminRole = "customer"
)

var validAdminRoles = []AdminRole{
	AdminRoleOwner,
	AdminRoleSuperAdmin,
	AdminRoleSubAdmin,
	AdminRoleStorekeeper,
	AdminRoleSalesperson,
	AdminRoleCustomer,
}

// Capability names a single back-office permission.
type Capability string

const (
	CapabilityInventoryRead  Capability = "inventory:read"
	CapabilityInventoryWrite Capability = "inventory:write"
	CapabilityActivityRead   Capability = "activity:read"
	CapabilitySalesRead      Capability = "sales:read"
	CapabilityAdminManage    Capability = "admin:manage"
)

var roleCapabilities = map[AdminRole][]Capability{
	AdminRoleOwner: {
		CapabilityInventoryRead,
		CapabilityInventoryWrite,
		CapabilityActivityRead,
		CapabilitySalesRead,
		CapabilityAdminManage,
	},
	AdminRoleSuperAdmin: {
		CapabilityInventoryRead,
		CapabilityInventoryWrite,
		CapabilityActivityRead,
		CapabilitySalesRead,
		CapabilityAdminManage,
	},
	AdminRoleSubAdmin: {
		CapabilityInventoryRead,
		CapabilityInventoryWrite,
		CapabilitySalesRead,
	},
	AdminRoleStorekeeper: {
		CapabilityInventoryRead,
		CapabilityInventoryWrite,
	},
	AdminRoleSalesperson: {
		CapabilityInventoryRead,
		CapabilitySalesRead,
	},
	AdminRoleCustomer: nil,
}

// String implements fmt.Stringer.
func (r AdminRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known AdminRole.
func (r AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role belongs to back-office staff.
func (r AdminRole) IsAdmin() bool {
	return r.IsValid() && r != AdminRoleCustomer
}

// Can reports whether the role grants the capability.
func (r AdminRole) Can(capability Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == capability {
			return true
		}
	}
	return false
}

// Capabilities returns a copy of the capabilities granted to the role.
func (r AdminRole) Capabilities() []Capability {
	granted := roleCapabilities[r]
	out := make([]Capability, len(granted))
	copy(out, granted)
	return out
}

// ParseAdminRole converts raw input into an AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validAdminRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
