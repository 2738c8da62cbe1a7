// Package pricing holds the congress price catalog and the pure functions
// deriving quotes and member classifications from it.
package pricing

// Currency every catalog amount is expressed in
const Currency = "MXN"

// Catalog prices
const (
	ListPrice          = 990.0
	AcademicPrice      = 490.0
	UndergraduatePrice = 250.0
	Paquete11Price     = 4900.0
	Paquete11Seats     = 11
	MembershipPrice    = 3850.0
	GuestPrice         = 0.0
)

// Price keys understood by the payment webhooks
const (
	PriceKeyList          = "precio_lista_congreso"
	PriceKeyAcademic      = "precio_academico"
	PriceKeyUndergraduate = "precio_estudiante_licenciatura"
	PriceKeyMembership    = "precio_membresia_barrista"
)

// Customer categories stored in customer.customer_category_fk
const (
	CategoryBarrista      = 4
	CategoryProfessor     = 5
	CategoryPostgraduate  = 6
	CategoryUndergraduate = 7
	CategoryGuest         = 8
)

// University is an institution with an academic agreement
type University string

const (
	UniversityUNAM University = "UNAM"
	UniversityUVM  University = "UVM"
	UniversityUAM  University = "UAM"
)

// Valid reports whether university has an agreement
func (u University) Valid() bool {
	switch u {
	case UniversityUNAM, UniversityUVM, UniversityUAM:
		return true
	default:
		return false
	}
}

// Role is the academic role of an attendee
type Role string

const (
	RoleProfessor     Role = "profesor"
	RolePostgraduate  Role = "posgrado"
	RoleUndergraduate Role = "licenciatura"
)

// Valid reports whether role is known
func (r Role) Valid() bool {
	switch r {
	case RoleProfessor, RolePostgraduate, RoleUndergraduate:
		return true
	default:
		return false
	}
}

// Category maps an academic role to its customer category, zero for unknown roles
func (r Role) Category() int {
	switch r {
	case RoleProfessor:
		return CategoryProfessor
	case RolePostgraduate:
		return CategoryPostgraduate
	case RoleUndergraduate:
		return CategoryUndergraduate
	default:
		return 0
	}
}
