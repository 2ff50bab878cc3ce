package enums

// DisplayStatus is the status shown next to a user in the admin roster.
// Extended profile verification values pass through untouched, so the set is open.
type DisplayStatus string

const (
	DisplayStatusActive    DisplayStatus = "active"
	DisplayStatusPending   DisplayStatus = "pending"
	DisplayStatusSuspended DisplayStatus = "suspended"
)

// String implements fmt.Stringer.
func (s DisplayStatus) String() string {
	return string(s)
}

// Fetchman verification values stored in fetchman_profiles.verification_status.
const (
	FetchmanVerificationPending  = "pending"
	FetchmanVerificationApproved = "approved"
	FetchmanVerificationRejected = "rejected"
)

// Vendor and host verification values stored in vendor_profiles / host_profiles.
const (
	PartnerVerificationPending  = "pending"
	PartnerVerificationVerified = "verified"
	PartnerVerificationDeclined = "declined"
)
