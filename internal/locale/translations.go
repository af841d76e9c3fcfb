// internal/locale/translations.go
package locale

var translations = map[Language]map[Key]string{
	Chinese: {
		Title:          "试试\n手气",
		RealMode:       "实盘模式",
		FunMode:        "娱乐模式",
		ExpGold:        "体验金: ",
		Balance:        "余额: ",
		StartGame:      "立即开始",
		NewUserTip:     "新人免费试玩，赢了开启实盘",
		Selecting:      "随机选择中...",
		Ready:          "选定离手！",
		Asset:          "合约资产",
		Amount:         "下注金额",
		Direction:      "方向",
		Leverage:       "倍数",
		TakeProfit:     "止盈",
		StopLoss:       "止损",
		Long:           "看涨 (Long)",
		Short:          "看跌 (Short)",
		Max:            "最大",
		StartTrading:   "开始交易",
		CurrentPnL:     "当前收益",
		Principal:      "本金",
		Position:       "持仓",
		TPPrice:        "止盈价",
		SLPrice:        "止损价",
		ClosePosition:  "立即平仓 (Stop)",
		LossTitle:      "遗憾离场",
		WinSmallTitle:  "恭喜小赚",
		WinBigTitle:    "投机之王",
		PlayAgain:      "再玩一次",
		ClaimExp:       "领取5U体验金",
		ClaimTip:       "限时领取，赚的钱你可以拿走！",
		ContinueReal:   "继续玩 (再赚更多)",
		DepositMore:    "去充值 (加大投入)",
		DepositRecover: "去充值 (翻本)",
		Invite:         "邀请好友 (再领5U)",
		BackToFun:      "返回娱乐模式",
		InviteTitle:    "呼朋唤友一起赚",
		InviteDesc:     "邀请好友注册，您将再次获得",
		InviteGold:     "5U 体验金",
		Close:          "关闭",
		DepositTitle:   "充值中心",
		DepositAmount:  "金额 (USDT)",
		DepositConfirm: "立即充值",
		Cancel:         "取消",
		ConfigReal:     "实盘配置",
		SelectAsset:    "选择合约",

		CurrentPrice:      "当前价格",
		Entry:             "开仓价",
		TimeLeft:          "剩余时间",
		LanguageLabel:     "EN",
		Quit:              "退出",
		InvalidAmount:     "金额无效",
		InsufficientFunds: "余额不足",
	},
	English: {
		Title:          "Try Your\nLuck",
		RealMode:       "REAL MODE",
		FunMode:        "FUN MODE",
		ExpGold:        "Exp Gold: ",
		Balance:        "Balance: ",
		StartGame:      "Start Game",
		NewUserTip:     "Free to play, win to unlock Real Mode",
		Selecting:      "Selecting...",
		Ready:          "Ready!",
		Asset:          "Asset",
		Amount:         "Amount",
		Direction:      "Direction",
		Leverage:       "Lev",
		TakeProfit:     "Take Profit",
		StopLoss:       "Stop Loss",
		Long:           "Long",
		Short:          "Short",
		Max:            "Max",
		StartTrading:   "Start Trading",
		CurrentPnL:     "Current PnL",
		Principal:      "Margin",
		Position:       "Size",
		TPPrice:        "TP Price",
		SLPrice:        "SL Price",
		ClosePosition:  "Close Position",
		LossTitle:      "Game Over",
		WinSmallTitle:  "Nice Win",
		WinBigTitle:    "Jackpot!",
		PlayAgain:      "Play Again",
		ClaimExp:       "Claim 5U Gold",
		ClaimTip:       "Limited time offer, keep what you earn!",
		ContinueReal:   "Continue (Earn More)",
		DepositMore:    "Deposit (Boost)",
		DepositRecover: "Deposit (Recover)",
		Invite:         "Invite (Get 5U)",
		BackToFun:      "Back to Fun Mode",
		InviteTitle:    "Invite & Earn",
		InviteDesc:     "Invite friends to register and get another",
		InviteGold:     "5U Exp Gold",
		Close:          "Close",
		DepositTitle:   "Deposit Center",
		DepositAmount:  "Amount (USDT)",
		DepositConfirm: "Deposit Now",
		Cancel:         "Cancel",
		ConfigReal:     "Configuration",
		SelectAsset:    "Select Asset",

		CurrentPrice:      "Current Price",
		Entry:             "Entry",
		TimeLeft:          "Time Left",
		LanguageLabel:     "中文",
		Quit:              "Quit",
		InvalidAmount:     "Invalid amount",
		InsufficientFunds: "Insufficient balance",
	},
}

var welcomeQuotes = map[Language][]string{
	Chinese: {
		"搏一搏，单车变摩托！",
		"今日财运如何？全看这一把！",
		"相信你的直觉，财富就在指尖。",
		"不仅是游戏，更是对人性的考验。",
		"狭路相逢勇者胜，试试你的手气！",
	},
	English: {
		"Risk it all, win it big!",
		"How is your luck today? It all depends on this move!",
		"Trust your instincts, wealth is at your fingertips.",
		"It's not just a game, it's a test of character.",
		"Fortune favors the bold, try your luck!",
	},
}

var lossQuotes = map[Language][]string{
	Chinese: {
		"您本次投资产生了亏损，胜败乃兵家常事，多练习盘感，下次说不定就能大赚。",
		"市场无情，人有情。休息片刻，调整心态再战！",
		"这次只是运气不好，下次一定翻盘！",
		"不要气馁，大神的每一步都是从亏损中走出来的。",
	},
	English: {
		"You took a loss this time. Defeat is common in battle; practice more, and you might win big next time.",
		"The market is ruthless, but you are strong. Take a break, reset your mindset, and fight again!",
		"Just bad luck this time, you'll turn it around next time!",
		"Don't be discouraged, every master started with losses.",
	},
}

var winSmallQuotes = map[Language][]string{
	Chinese: {
		"恭喜，本次游戏盈利{x}%，赢多输少，则能财源滚滚。",
		"稳扎稳打，步步为营，这才是长久之道。",
		"运气不错！看来今天适合搞点大的。",
		"小试牛刀就赚了，您的盘感很准哦！",
	},
	English: {
		"Congratulations, you profited {x}%! Winning more than losing is the path to wealth.",
		"Steady and sure, step by step, that is the long-term way.",
		"Nice luck! Looks like today is a good day to go big.",
		"Small test, big result. Your instincts are sharp!",
	},
}

var winBigQuotes = map[Language][]string{
	Chinese: {
		"恭喜您，本次大赚{x}%，获得【投机之王】称号！",
		"简直是神之一手！华尔街之狼非你莫属！",
		"全场欢呼！您的操作简直如入无人之境！",
		"财富自由的号角已经吹响，太强了！",
	},
	English: {
		"Congratulations, you made a massive {x}% profit! You are the King of Speculation!",
		"Godlike move! You are the Wolf of Wall Street!",
		"The crowd goes wild! Your trading is unstoppable!",
		"The horn of financial freedom has sounded, you are too strong!",
	},
}
