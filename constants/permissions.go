package constants

import "quickzone-backend/models/user"

// Organization permissions
const (
	// Admin permissions
	PermAdminFull      = "quickzone.admin.full-permit"
	PermCommercialFull = "quickzone.commercial.full-permit"
	PermFinanceFull    = "quickzone.finance.full-permit"

	// Agency permissions
	PermChefAgenceFull   = "quickzone.chef-agence.full-permit"
	PermMembreAgenceFull = "quickzone.membre-agence.full-permit"

	// Field permissions
	PermLivreurFull    = "quickzone.livreur.full-permit"
	PermExpediteurFull = "quickzone.expediteur.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	AdminPermissions = []string{
		PermAdminFull,
		PermCommercialFull,
		PermFinanceFull,
	}

	AgencyStaffPermissions = []string{
		PermChefAgenceFull,
		PermMembreAgenceFull,
	}
)

// RolePermissions maps a dashboard role to the permission strings issued in
// its JWT at login.
var RolePermissions = map[string][]string{
	user.RoleAdmin:        {PermAdminFull},
	user.RoleCommercial:   {PermCommercialFull},
	user.RoleFinance:      {PermFinanceFull},
	user.RoleChefAgence:   {PermChefAgenceFull},
	user.RoleMembreAgence: {PermMembreAgenceFull},
	user.RoleLivreur:      {PermLivreurFull},
	user.RoleExpediteur:   {PermExpediteurFull},
}
