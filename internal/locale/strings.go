// internal/locale/strings.go
package locale

// Key identifies a translated string.
type Key string

const (
	Title          Key = "title"
	RealMode       Key = "real_mode"
	FunMode        Key = "fun_mode"
	ExpGold        Key = "exp_gold"
	Balance        Key = "balance"
	StartGame      Key = "start_game"
	NewUserTip     Key = "new_user_tip"
	Selecting      Key = "selecting"
	Ready          Key = "ready"
	Asset          Key = "asset"
	Amount         Key = "amount"
	Direction      Key = "direction"
	Leverage       Key = "leverage"
	TakeProfit     Key = "tp"
	StopLoss       Key = "sl"
	Long           Key = "long"
	Short          Key = "short"
	Max            Key = "max"
	StartTrading   Key = "start_trading"
	CurrentPnL     Key = "current_pnl"
	Principal      Key = "principal"
	Position       Key = "position"
	TPPrice        Key = "tp_price"
	SLPrice        Key = "sl_price"
	ClosePosition  Key = "close_position"
	LossTitle      Key = "loss_title"
	WinSmallTitle  Key = "win_small_title"
	WinBigTitle    Key = "win_big_title"
	PlayAgain      Key = "play_again"
	ClaimExp       Key = "claim_exp"
	ClaimTip       Key = "claim_tip"
	ContinueReal   Key = "continue_real"
	DepositMore    Key = "deposit_more"
	DepositRecover Key = "deposit_recover"
	Invite         Key = "invite"
	BackToFun      Key = "back_to_fun"
	InviteTitle    Key = "invite_title"
	InviteDesc     Key = "invite_desc"
	InviteGold     Key = "invite_gold"
	Close          Key = "close"
	DepositTitle   Key = "deposit_title"
	DepositAmount  Key = "deposit_amount"
	DepositConfirm Key = "deposit_confirm"
	Cancel         Key = "cancel"
	ConfigReal     Key = "config_real"
	SelectAsset    Key = "select_asset"

	// Terminal-only strings
	CurrentPrice      Key = "current_price"
	Entry             Key = "entry"
	TimeLeft          Key = "time_left"
	LanguageLabel     Key = "language"
	Quit              Key = "quit"
	InvalidAmount     Key = "invalid_amount"
	InsufficientFunds Key = "insufficient_funds"
)
