package constants

// Parcel tracking permissions, as carried in the token's "permissions" claim.
const (
	// Admin permissions
	PermSuperAdminFull        = "parcel-tracking.super-admin.full-permit"
	PermOrganizationAdminFull = "parcel-tracking.organization-admin.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	OrganizationAdminPermissions = []string{
		PermSuperAdminFull,
		PermOrganizationAdminFull,
	}
)
