package types

// Event types for the token module
const (
	EventTypeTransfer = "token_transfer"
	EventTypeApproval = "token_approval"
	EventTypeMint     = "token_mint"
	EventTypeBurn     = "token_burn"

	AttributeKeyDenom     = "denom"
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyOwner     = "owner"
	AttributeKeySpender   = "spender"
	AttributeKeyAmount    = "amount"
)
