package domain

// AspirationCategory classifies a submitted aspiration.
type AspirationCategory string

const (
	CategoryAkademik   AspirationCategory = "AKADEMIK"
	CategoryFasilitas  AspirationCategory = "FASILITAS"
	CategoryOrganisasi AspirationCategory = "ORGANISASI"
	CategoryProposal   AspirationCategory = "PROPOSAL"
	CategoryLainnya    AspirationCategory = "LAINNYA"
)

func (c AspirationCategory) String() string { return string(c) }

func (c AspirationCategory) IsValid() bool {
	switch c {
	case CategoryAkademik, CategoryFasilitas, CategoryOrganisasi, CategoryProposal, CategoryLainnya:
		return true
	}
	return false
}

// AspirationStatus represents the workflow stage of an aspiration.
type AspirationStatus string

const (
	StatusPending  AspirationStatus = "PENDING"
	StatusReview   AspirationStatus = "REVIEW"
	StatusDiproses AspirationStatus = "DIPROSES"
	StatusSelesai  AspirationStatus = "SELESAI"
)

func (s AspirationStatus) String() string { return string(s) }

func (s AspirationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReview, StatusDiproses, StatusSelesai:
		return true
	}
	return false
}

// statusRank orders the workflow stages. Higher rank means further along.
var statusRank = map[AspirationStatus]int{
	StatusPending:  0,
	StatusReview:   1,
	StatusDiproses: 2,
	StatusSelesai:  3,
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
// Transitions are forward-only: a stage may be skipped but never revisited.
// Writing the current stage again is allowed (no-op update).
func (s AspirationStatus) CanTransitionTo(next AspirationStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// IsTerminal reports whether no further transitions are possible from s.
func (s AspirationStatus) IsTerminal() bool { return s == StatusSelesai }

// UserRole represents the authorization level of a portal user.
type UserRole string

const (
	RoleMPM           UserRole = "MPM"
	RoleKemahasiswaan UserRole = "KEMAHASISWAAN"
	RoleBEM           UserRole = "BEM"
	RoleStudent       UserRole = "STUDENT"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case RoleMPM, RoleKemahasiswaan, RoleBEM, RoleStudent:
		return true
	}
	return false
}

// IsStaff reports whether the role may triage aspirations.
func (r UserRole) IsStaff() bool {
	return r == RoleMPM || r == RoleKemahasiswaan || r == RoleBEM
}
