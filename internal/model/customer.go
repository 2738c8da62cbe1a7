package model

// Status specifies where a customer is in the registration process
type Status string

const (
	// StatusLead means customer registered but hasn't paid yet
	StatusLead Status = "Lead"
	// StatusConfirmed means payment was verified
	StatusConfirmed Status = "Confirmed"
	// StatusPendingReview means a bank receipt or membership proof awaits review
	StatusPendingReview Status = "Pending Review"
	// StatusRejected means the submitted receipt was rejected
	StatusRejected Status = "Rejected"
)

// IsLead reports whether the customer can still change the registration data
func (s Status) IsLead() bool {
	return s == StatusLead
}

// Customer is congress attendee entity
type Customer struct {
	ID                 string  `json:"customerId" bson:"_id,omitempty"`
	FirstName          string  `json:"firstName" bson:"first_name"`
	LastName           string  `json:"lastName" bson:"last_name"`
	Email              string  `json:"email" bson:"email"`
	MobilePhone        string  `json:"mobilePhone" bson:"mobile_phone"`
	Status             Status  `json:"status" bson:"status"`
	CustomerCategoryFK *int    `json:"customerCategoryFk" bson:"customer_category_fk"`
	OrganizationFK     *int    `json:"organizationFk" bson:"organization_fk"`
	RFC                *string `json:"rfc,omitempty" bson:"rfc,omitempty"`
}

// Lead is registration data submitted from one of the forms
type Lead struct {
	FirstName          string
	LastName           string
	Email              string
	MobilePhone        string
	CustomerCategoryFK *int
	RFC                *string
}
