package model

// The platform ships with a fixed set of nine roles.  Their IDs are
// stable reference data seeded at installation time and are relied on
// throughout the assignment and discount logic, so they are declared
// here as constants instead of being re-derived from raw integers at
// every call site.
const (
	RoleSuperadmin          uint64 = 1
	RoleAdmin               uint64 = 2
	RoleManagedArtist       uint64 = 3
	RoleArtist              uint64 = 4
	RoleManagedMusician     uint64 = 5
	RoleMusician            uint64 = 6
	RoleManagedProfessional uint64 = 7
	RoleProfessional        uint64 = 8
	RoleFan                 uint64 = 9
)

// RoleCategory partitions the role space into the five coarse user
// categories the booking workflow branches on.  The set is closed; any
// role ID outside the known range maps to CategoryFan.
type RoleCategory string

const (
	CategoryAdmin        RoleCategory = "admin"
	CategoryArtist       RoleCategory = "artist"
	CategoryMusician     RoleCategory = "musician"
	CategoryProfessional RoleCategory = "professional"
	CategoryFan          RoleCategory = "fan"
)

// IsManagedRole reports whether the role entitles the holder to
// tier-based discounts and full-service representation.
func IsManagedRole(roleID uint64) bool {
	switch roleID {
	case RoleManagedArtist, RoleManagedMusician, RoleManagedProfessional:
		return true
	}
	return false
}

// CategoryForRole maps a role ID to its category.  It is a total
// function: unrecognized IDs fall back to CategoryFan rather than
// erroring, keeping downstream display logic resilient.
func CategoryForRole(roleID uint64) RoleCategory {
	switch roleID {
	case RoleSuperadmin, RoleAdmin:
		return CategoryAdmin
	case RoleManagedArtist, RoleArtist:
		return CategoryArtist
	case RoleManagedMusician, RoleMusician:
		return CategoryMusician
	case RoleManagedProfessional, RoleProfessional:
		return CategoryProfessional
	default:
		return CategoryFan
	}
}

// SelfRegisterRoleID maps a role name from a registration request to
// its ID.  Only the unmanaged public roles may be self-assigned;
// managed and admin roles are granted by a superadmin after the fact.
// Unknown or empty names register as fans.
func SelfRegisterRoleID(name string) uint64 {
	switch name {
	case "artist":
		return RoleArtist
	case "musician":
		return RoleMusician
	case "professional":
		return RoleProfessional
	default:
		return RoleFan
	}
}

// RoleIDForName maps a canonical seed name back to its role ID.  The
// second return is false for unknown names; unlike self-registration
// there is no fan fallback, since admin role grants must be explicit.
func RoleIDForName(name string) (uint64, bool) {
	for id := RoleSuperadmin; id <= RoleFan; id++ {
		if RoleName(id) == name {
			return id, true
		}
	}
	return 0, false
}

// RoleName returns the canonical seed name for a role ID, or "fan"
// for unknown IDs.  Handlers embed this in JWT claims so the role
// middleware can gate routes without a database lookup.
func RoleName(roleID uint64) string {
	switch roleID {
	case RoleSuperadmin:
		return "superadmin"
	case RoleAdmin:
		return "admin"
	case RoleManagedArtist:
		return "managed_artist"
	case RoleArtist:
		return "artist"
	case RoleManagedMusician:
		return "managed_musician"
	case RoleMusician:
		return "musician"
	case RoleManagedProfessional:
		return "managed_professional"
	case RoleProfessional:
		return "professional"
	default:
		return "fan"
	}
}
