package domain

import "testing"

func TestAccessPolicy_ReadWrite(t *testing.T) {
	t.Parallel()

	var policy AccessPolicy
	res := Reservation{ID: 1, OwnerID: 2}

	admin := Actor{ID: 1, Role: RoleAdmin}
	owner := Actor{ID: 2, Role: RoleUser}
	manager := Actor{ID: 3, Role: RoleManager}
	other := Actor{ID: 4, Role: RoleUser}

	if err := policy.CanRead(admin, res); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if err := policy.CanRead(owner, res); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if err := policy.CanRead(manager, res); err != ErrForbidden {
		t.Fatalf("manager read on foreign reservation: expected ErrForbidden, got %v", err)
	}
	if err := policy.CanWrite(other, res); err != ErrForbidden {
		t.Fatalf("stranger write: expected ErrForbidden, got %v", err)
	}
}

func TestAccessPolicy_ChangeStatus(t *testing.T) {
	t.Parallel()

	var policy AccessPolicy

	if err := policy.CanChangeStatus(Actor{ID: 1, Role: RoleAdmin}); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if err := policy.CanChangeStatus(Actor{ID: 2, Role: RoleManager}); err != ErrForbidden {
		t.Fatalf("manager: expected ErrForbidden, got %v", err)
	}
	if err := policy.CanChangeStatus(Actor{ID: 3, Role: RoleUser}); err != ErrForbidden {
		t.Fatalf("user: expected ErrForbidden, got %v", err)
	}
}

func TestAccessPolicy_ManageSpaces(t *testing.T) {
	t.Parallel()

	var policy AccessPolicy

	if err := policy.CanManageSpaces(Actor{Role: RoleAdmin}); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if err := policy.CanManageSpaces(Actor{Role: RoleManager}); err != nil {
		t.Fatalf("manager: %v", err)
	}
	if err := policy.CanManageSpaces(Actor{Role: RoleUser}); err != ErrForbidden {
		t.Fatalf("user: expected ErrForbidden, got %v", err)
	}
}

func TestAccessPolicy_DeleteSpaceGuard(t *testing.T) {
	t.Parallel()

	var policy AccessPolicy

	if err := policy.CanDeleteSpace(0); err != nil {
		t.Fatalf("no active reservations: %v", err)
	}
	if err := policy.CanDeleteSpace(2); err != ErrSpaceInUse {
		t.Fatalf("active reservations: expected ErrSpaceInUse, got %v", err)
	}
}

func TestAccessPolicy_SelfProtection(t *testing.T) {
	t.Parallel()

	var policy AccessPolicy
	admin := Actor{ID: 7, Role: RoleAdmin}

	if err := policy.CheckSelfProtection(admin, 7); err != ErrSelfProtection {
		t.Fatalf("self target: expected ErrSelfProtection, got %v", err)
	}
	if err := policy.CheckSelfProtection(admin, 8); err != nil {
		t.Fatalf("other target: %v", err)
	}
}
