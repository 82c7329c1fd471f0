package audithook

// Action constants for audit events.
const (
	// Account actions
	ActionViewerRegistered     = "viewer.registered"
	ActionCreatorRegistered    = "creator.registered"
	ActionAdvertiserRegistered = "advertiser.registered"

	// Campaign actions
	ActionCampaignFunded     = "campaign.funded"
	ActionCampaignRegistered = "campaign.registered"
	ActionVariantEvolved     = "variant.evolved"

	// Autopilot actions
	ActionAIAgentConfigured    = "ai_agent.configured"
	ActionInstructionSubmitted = "instruction.submitted"

	// Settlement actions
	ActionRewardDistributed = "reward.distributed"

	// Credit actions
	ActionCreditRequested = "credit.requested"
	ActionCreditCleared   = "credit.cleared"
	ActionLoanRequested   = "loan.requested"
	ActionLoanRepaid      = "loan.repaid"

	// Vault actions
	ActionVaultStaked    = "vault.staked"
	ActionVaultHarvested = "vault.harvested"

	// Engine actions
	ActionOperationRejected = "operation.rejected"
)

// Resource constants for audit events.
const (
	ResourceViewer     = "viewer"
	ResourceCreator    = "creator"
	ResourceAdvertiser = "advertiser"
	ResourceCampaign   = "campaign"
	ResourceVault      = "vault"
	ResourceLoan       = "loan"
	ResourceOperation  = "operation"
)

// Category constants for audit events.
const (
	CategoryAccount    = "account"
	CategoryCampaign   = "campaign"
	CategorySettlement = "settlement"
	CategoryCredit     = "credit"
	CategoryVault      = "vault"
	CategoryEngine     = "engine"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
