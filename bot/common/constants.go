package common

// Embed colours
const (
	ColorPrimary = 0x0099FF
	ColorSuccess = 0x00FF00
	ColorDanger  = 0xFF0000
	ColorWarning = 0xFFFF00
	ColorOrange  = 0xFF8800
	ColorBlack   = 0x000000
	ColorGrey    = 0x808080
)

// Custom ID prefixes used to route component interactions
const (
	LOAApprovePrefix = "loa_approve_"
	LOADenyPrefix    = "loa_deny_"
	ConfirmPrefix    = "confirm_"
	CancelPrefix     = "cancel_"
	SetupPrefix      = "setup_"
)

// Standard replies shared across features
const (
	MsgConfigNotFound = "Guild configuration not found."
	MsgMemberNotFound = "Member not found."
	MsgAdminRequired  = "You need administrator permissions to use this command."
	MsgRoleSyncFailed = "⚠️ Rank roles could not be updated. Check the bot's role permissions."
)
