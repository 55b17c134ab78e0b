package auth

// Permission tokens available in the system. Identity is by name; these are
// the values stored in the permissions table and checked by the resolver.
const (
	// PermViewZones allows listing and viewing zones.
	PermViewZones = "view zones"
	// PermManageZones allows creating, editing and deleting zones.
	PermManageZones = "manage zones"

	// PermViewMehfils allows listing and viewing mehfil directory entries.
	PermViewMehfils = "view mehfils"
	// PermManageMehfils allows creating, editing and deleting mehfil directory entries.
	PermManageMehfils = "manage mehfils"

	// PermViewKarkuns allows listing and viewing karkun records.
	PermViewKarkuns = "view karkuns"
	// PermManageKarkuns allows creating, editing and deleting karkun records.
	PermManageKarkuns = "manage karkuns"

	// PermViewEhads allows listing and viewing new ehad records.
	PermViewEhads = "view ehads"
	// PermManageEhads allows creating, editing and deleting new ehad records.
	PermManageEhads = "manage ehads"

	// PermViewTabarukats allows listing and viewing tabarukat records.
	PermViewTabarukats = "view tabarukats"
	// PermManageTabarukats allows creating, editing and deleting tabarukat records.
	PermManageTabarukats = "manage tabarukats"

	// PermViewReports allows listing and viewing mehfil reports.
	PermViewReports = "view reports"
	// PermManageReports allows creating, editing and deleting mehfil reports.
	PermManageReports = "manage reports"

	// PermViewTaleemat allows listing and viewing taleemat content.
	PermViewTaleemat = "view taleemat"
	// PermManageTaleemat allows creating, editing, publishing and deleting taleemat content.
	PermManageTaleemat = "manage taleemat"

	// PermViewUsers allows listing and viewing portal users.
	PermViewUsers = "view users"
	// PermManageUsers allows creating, editing and deleting portal users.
	PermManageUsers = "manage users"

	// PermViewRoles allows listing and viewing roles.
	PermViewRoles = "view roles"
	// PermManageRoles allows creating, editing and deleting roles and their permissions.
	PermManageRoles = "manage roles"
)

// All enumerates every permission token for seeding and role management.
func All() []string {
	return []string{
		PermViewZones, PermManageZones,
		PermViewMehfils, PermManageMehfils,
		PermViewKarkuns, PermManageKarkuns,
		PermViewEhads, PermManageEhads,
		PermViewTabarukats, PermManageTabarukats,
		PermViewReports, PermManageReports,
		PermViewTaleemat, PermManageTaleemat,
		PermViewUsers, PermManageUsers,
		PermViewRoles, PermManageRoles,
	}
}
