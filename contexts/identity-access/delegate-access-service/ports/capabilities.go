package ports

// Capability names resolved by the session layer and checked uniformly
// by the workflow before each operation.
const (
	CapabilityMember           = "member"
	CapabilityOrgMember        = "org-member"
	CapabilityEcosystemManager = "ecosystem-manager"
)
