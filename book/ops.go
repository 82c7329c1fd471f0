package book

import (
	"encoding/json"
	"fmt"

	"github.com/sarthak567/adloom/event"
	"github.com/sarthak567/adloom/types"
)

// Op is the closed set of ledger operations. Amount fields travel as
// decimal strings and are parsed at the Apply boundary, before any
// state is touched.
type Op interface {
	// Kind returns the wire name of the operation.
	Kind() string

	isOp()
}

// RegisterViewer creates a viewer account.
type RegisterViewer struct {
	ViewerID string `json:"viewer_id"`
	Handle   string `json:"handle"`
}

// RegisterCreator creates a creator account.
type RegisterCreator struct {
	CreatorID string `json:"creator_id"`
	Handle    string `json:"handle"`
	Category  string `json:"category"`
}

// RegisterAdvertiser creates an advertiser account.
type RegisterAdvertiser struct {
	AdvertiserID   string `json:"advertiser_id"`
	Brand          string `json:"brand"`
	FloorCPMMicros uint64 `json:"floor_cpm_micros"`
}

// FundCampaign deposits budget into an advertiser's balance.
type FundCampaign struct {
	AdvertiserID string `json:"advertiser_id"`
	Amount       string `json:"amount"`
}

// ConfigureAIAgent replaces an advertiser's autopilot settings.
type ConfigureAIAgent struct {
	AdvertiserID     string `json:"advertiser_id"`
	AINotes          string `json:"ai_notes"`
	FloorCPMMicros   uint64 `json:"floor_cpm_micros"`
	BidMultiplierBps uint64 `json:"bid_multiplier_bps"`
}

// RegisterCampaign creates and funds a campaign in one step.
type RegisterCampaign struct {
	AdvertiserID   string `json:"advertiser_id"`
	CampaignID     string `json:"campaign_id"`
	Budget         string `json:"budget"`
	FloorCPMMicros uint64 `json:"floor_cpm_micros"`
}

// EvolveAdVariant upserts a creative within a campaign.
type EvolveAdVariant struct {
	CampaignID string `json:"campaign_id"`
	VariantID  string `json:"variant_id"`
	Headline   string `json:"headline"`
	Status     string `json:"status"`
}

// RecordVerifiedView settles one verified view. CampaignID may be
// empty for direct buys.
type RecordVerifiedView struct {
	CampaignID    string `json:"campaign_id,omitempty"`
	AdvertiserID  string `json:"advertiser_id"`
	CreatorID     string `json:"creator_id"`
	ViewerID      string `json:"viewer_id"`
	AttnUnits     uint64 `json:"attn_units"`
	RewardPerUnit string `json:"reward_per_unit"`
}

// RequestCredit draws on a viewer's micro-credit line.
type RequestCredit struct {
	ViewerID string `json:"viewer_id"`
	Amount   string `json:"amount"`
}

// ClearCredit repays outstanding viewer credit.
type ClearCredit struct {
	ViewerID string `json:"viewer_id"`
	Amount   string `json:"amount"`
}

// StakeVault stakes into a creator's vault.
type StakeVault struct {
	CreatorID string `json:"creator_id"`
	Amount    string `json:"amount"`
}

// HarvestVault mints one period's vault yield.
type HarvestVault struct {
	CreatorID string `json:"creator_id"`
}

// RequestLoan draws principal against a viewer's loan record.
type RequestLoan struct {
	ViewerID string `json:"viewer_id"`
	Amount   string `json:"amount"`
}

// RepayLoan pays down a viewer's loan.
type RepayLoan struct {
	ViewerID string `json:"viewer_id"`
	Amount   string `json:"amount"`
}

// SubmitInstruction records a free-text brand directive.
type SubmitInstruction struct {
	AdvertiserID string `json:"advertiser_id"`
	Instruction  string `json:"instruction"`
}

// Kind values double as the envelope discriminator on the wire.
func (RegisterViewer) Kind() string     { return "register_viewer" }
func (RegisterCreator) Kind() string    { return "register_creator" }
func (RegisterAdvertiser) Kind() string { return "register_advertiser" }
func (FundCampaign) Kind() string       { return "fund_campaign" }
func (ConfigureAIAgent) Kind() string   { return "configure_ai_agent" }
func (RegisterCampaign) Kind() string   { return "register_campaign" }
func (EvolveAdVariant) Kind() string    { return "evolve_ad_variant" }
func (RecordVerifiedView) Kind() string { return "record_verified_view" }
func (RequestCredit) Kind() string      { return "request_credit" }
func (ClearCredit) Kind() string        { return "clear_credit" }
func (StakeVault) Kind() string         { return "stake_vault" }
func (HarvestVault) Kind() string       { return "harvest_vault" }
func (RequestLoan) Kind() string        { return "request_afi_loan" }
func (RepayLoan) Kind() string          { return "repay_afi_loan" }
func (SubmitInstruction) Kind() string  { return "submit_brand_instruction" }

func (RegisterViewer) isOp()     {}
func (RegisterCreator) isOp()    {}
func (RegisterAdvertiser) isOp() {}
func (FundCampaign) isOp()       {}
func (ConfigureAIAgent) isOp()   {}
func (RegisterCampaign) isOp()   {}
func (EvolveAdVariant) isOp()    {}
func (RecordVerifiedView) isOp() {}
func (RequestCredit) isOp()      {}
func (ClearCredit) isOp()        {}
func (StakeVault) isOp()         {}
func (HarvestVault) isOp()       {}
func (RequestLoan) isOp()        {}
func (RepayLoan) isOp()          {}
func (SubmitInstruction) isOp()  {}

// Outcome carries the by-products of an applied operation: the
// attention event for verified views, the minted yield for harvests.
type Outcome struct {
	Event     *event.AttentionEvent
	Yield     types.Amount
	Harvested bool
}

// Apply dispatches an operation to its transition. On error the
// receiver may hold partial writes; callers that need atomicity apply
// to a Clone and discard it on failure, which is what the engine does.
func (b *Book) Apply(op Op) (Outcome, error) {
	switch o := op.(type) {
	case RegisterViewer:
		return Outcome{}, b.RegisterViewer(o.ViewerID, o.Handle)
	case RegisterCreator:
		return Outcome{}, b.RegisterCreator(o.CreatorID, o.Handle, o.Category)
	case RegisterAdvertiser:
		return Outcome{}, b.RegisterAdvertiser(o.AdvertiserID, o.Brand, o.FloorCPMMicros)
	case FundCampaign:
		amount, err := parseAmount(o.Amount)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.FundCampaign(o.AdvertiserID, amount)
	case ConfigureAIAgent:
		return Outcome{}, b.ConfigureAIAgent(o.AdvertiserID, o.AINotes, o.FloorCPMMicros, o.BidMultiplierBps)
	case RegisterCampaign:
		budget, err := parseAmount(o.Budget)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.RegisterCampaign(o.AdvertiserID, o.CampaignID, budget, o.FloorCPMMicros)
	case EvolveAdVariant:
		return Outcome{}, b.EvolveAdVariant(o.CampaignID, o.VariantID, o.Headline, o.Status)
	case RecordVerifiedView:
		rewardPerUnit, err := parseAmount(o.RewardPerUnit)
		if err != nil {
			return Outcome{}, err
		}
		evt, err := b.RecordVerifiedView(o.CampaignID, o.AdvertiserID, o.CreatorID, o.ViewerID, o.AttnUnits, rewardPerUnit)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Event: evt}, nil
	case RequestCredit:
		amount, err := parseAmount(o.Amount)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.RequestCredit(o.ViewerID, amount)
	case ClearCredit:
		amount, err := parseAmount(o.Amount)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.ClearCredit(o.ViewerID, amount)
	case StakeVault:
		amount, err := parseAmount(o.Amount)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.StakeVault(o.CreatorID, amount)
	case HarvestVault:
		yield, err := b.HarvestVault(o.CreatorID)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Yield: yield, Harvested: true}, nil
	case RequestLoan:
		amount, err := parseAmount(o.Amount)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.RequestLoan(o.ViewerID, amount)
	case RepayLoan:
		amount, err := parseAmount(o.Amount)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{}, b.RepayLoan(o.ViewerID, amount)
	case SubmitInstruction:
		return Outcome{}, b.SubmitInstruction(o.AdvertiserID, o.Instruction)
	default:
		return Outcome{}, fmt.Errorf("adloom: unknown operation %T", op)
	}
}

func parseAmount(s string) (types.Amount, error) {
	amount, err := types.ParseAmount(s)
	if err != nil {
		return types.Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// envelope is the wire form for transports: a kind discriminator plus
// the operation's own fields.
type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalOp encodes an operation into its wire envelope.
func MarshalOp(op Op) ([]byte, error) {
	payload, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("adloom: marshal %s: %w", op.Kind(), err)
	}
	return json.Marshal(envelope{Kind: op.Kind(), Payload: payload})
}

// UnmarshalOp decodes a wire envelope into an operation.
func UnmarshalOp(data []byte) (Op, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("adloom: unmarshal operation: %w", err)
	}

	switch env.Kind {
	case "register_viewer":
		return decodePayload[RegisterViewer](env)
	case "register_creator":
		return decodePayload[RegisterCreator](env)
	case "register_advertiser":
		return decodePayload[RegisterAdvertiser](env)
	case "fund_campaign":
		return decodePayload[FundCampaign](env)
	case "configure_ai_agent":
		return decodePayload[ConfigureAIAgent](env)
	case "register_campaign":
		return decodePayload[RegisterCampaign](env)
	case "evolve_ad_variant":
		return decodePayload[EvolveAdVariant](env)
	case "record_verified_view":
		return decodePayload[RecordVerifiedView](env)
	case "request_credit":
		return decodePayload[RequestCredit](env)
	case "clear_credit":
		return decodePayload[ClearCredit](env)
	case "stake_vault":
		return decodePayload[StakeVault](env)
	case "harvest_vault":
		return decodePayload[HarvestVault](env)
	case "request_afi_loan":
		return decodePayload[RequestLoan](env)
	case "repay_afi_loan":
		return decodePayload[RepayLoan](env)
	case "submit_brand_instruction":
		return decodePayload[SubmitInstruction](env)
	default:
		return nil, fmt.Errorf("adloom: unknown operation kind %q", env.Kind)
	}
}

func decodePayload[T Op](env envelope) (Op, error) {
	var op T
	if err := json.Unmarshal(env.Payload, &op); err != nil {
		return nil, fmt.Errorf("adloom: unmarshal %s: %w", env.Kind, err)
	}
	return op, nil
}
