package domain

import "testing"

func TestTransition(t *testing.T) {
	t.Parallel()

	admin := Actor{ID: 1, Role: RoleAdmin}
	owner := Actor{ID: 2, Role: RoleUser}
	other := Actor{ID: 3, Role: RoleUser}

	res := func(status Status) Reservation {
		return Reservation{ID: 10, OwnerID: owner.ID, Status: status}
	}

	cases := []struct {
		name  string
		actor Actor
		from  Status
		to    Status
		want  error
	}{
		{"admin confirms pending", admin, StatusPending, StatusConfirmed, nil},
		{"owner cannot confirm", owner, StatusPending, StatusConfirmed, ErrForbidden},
		{"admin rejects pending", admin, StatusPending, StatusCancelled, nil},
		{"owner cancels pending", owner, StatusPending, StatusCancelled, nil},
		{"stranger cannot cancel", other, StatusPending, StatusCancelled, ErrForbidden},
		{"owner cancels confirmed", owner, StatusConfirmed, StatusCancelled, nil},
		{"confirmed back to pending is never permitted", admin, StatusConfirmed, StatusPending, ErrInvalidTransition},
		{"cancelled to pending is never permitted", admin, StatusCancelled, StatusPending, ErrInvalidTransition},
		{"cancelled to confirmed is never permitted", admin, StatusCancelled, StatusConfirmed, ErrInvalidTransition},
		{"pending to pending is not a transition", admin, StatusPending, StatusPending, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Transition(tc.actor, res(tc.from), tc.to); got != tc.want {
				t.Fatalf("Transition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestCanEdit(t *testing.T) {
	t.Parallel()

	if err := CanEdit(Reservation{Status: StatusPending}); err != nil {
		t.Fatalf("expected pending to be editable, got %v", err)
	}
	if err := CanEdit(Reservation{Status: StatusConfirmed}); err != nil {
		t.Fatalf("expected confirmed to be editable, got %v", err)
	}
	if err := CanEdit(Reservation{Status: StatusCancelled}); err != ErrReservationCancelled {
		t.Fatalf("expected ErrReservationCancelled, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"pending", "confirmed", "cancelled"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParseStatus("expired"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
