package entity

import "fmt"

// Role is the account type. The numeric values are part of the public API.
type Role int

const (
	RoleAdmin      Role = 1
	RolePharmacist Role = 2
	RoleCustomer   Role = 3
	RoleSupplier   Role = 4
	RoleDeliverer  Role = 5
)

var roleNames = map[Role]string{
	RoleAdmin:      "Admin",
	RolePharmacist: "Pharmacist",
	RoleCustomer:   "Customer",
	RoleSupplier:   "Supplier",
	RoleDeliverer:  "Deliverer",
}

// Valid reports whether r is one of the five defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(r))
}

// ParseRole converts a raw value into a Role, rejecting anything outside 1..5.
func ParseRole(v int) (Role, error) {
	r := Role(v)
	if !r.Valid() {
		return 0, fmt.Errorf("invalid role %d", v)
	}
	return r, nil
}
