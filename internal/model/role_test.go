package model

import "testing"

func TestIsManagedRole(t *testing.T) {
	managed := map[uint64]bool{
		RoleManagedArtist:       true,
		RoleManagedMusician:     true,
		RoleManagedProfessional: true,
	}
	for id := uint64(1); id <= 9; id++ {
		if got := IsManagedRole(id); got != managed[id] {
			t.Errorf("IsManagedRole(%d) = %v, want %v", id, got, managed[id])
		}
	}
}

func TestCategoryForRole(t *testing.T) {
	cases := []struct {
		roleID uint64
		want   RoleCategory
	}{
		{RoleSuperadmin, CategoryAdmin},
		{RoleAdmin, CategoryAdmin},
		{RoleManagedArtist, CategoryArtist},
		{RoleArtist, CategoryArtist},
		{RoleManagedMusician, CategoryMusician},
		{RoleMusician, CategoryMusician},
		{RoleManagedProfessional, CategoryProfessional},
		{RoleProfessional, CategoryProfessional},
		{RoleFan, CategoryFan},
		{0, CategoryFan},
		{99, CategoryFan},
	}
	for _, c := range cases {
		if got := CategoryForRole(c.roleID); got != c.want {
			t.Errorf("CategoryForRole(%d) = %q, want %q", c.roleID, got, c.want)
		}
	}
}

func TestSelfRegisterRoleID(t *testing.T) {
	cases := []struct {
		name string
		want uint64
	}{
		{"artist", RoleArtist},
		{"musician", RoleMusician},
		{"professional", RoleProfessional},
		{"fan", RoleFan},
		{"", RoleFan},
		// Managed and admin roles are never self-assignable.
		{"superadmin", RoleFan},
		{"managed_artist", RoleFan},
	}
	for _, c := range cases {
		if got := SelfRegisterRoleID(c.name); got != c.want {
			t.Errorf("SelfRegisterRoleID(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestRoleNameRoundTrip(t *testing.T) {
	for id := uint64(1); id <= 9; id++ {
		name := RoleName(id)
		if name == "" {
			t.Errorf("RoleName(%d) is empty", id)
		}
		back, ok := RoleIDForName(name)
		if !ok || back != id {
			t.Errorf("RoleIDForName(%q) = %d,%v, want %d,true", name, back, ok, id)
		}
	}
	if got := RoleName(77); got != "fan" {
		t.Errorf("RoleName(77) = %q, want fan", got)
	}
	if _, ok := RoleIDForName("impresario"); ok {
		t.Error("RoleIDForName accepted an unknown name")
	}
}
