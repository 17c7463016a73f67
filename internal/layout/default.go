package layout

// defaultEntries is the built-in table. Order matters: the sweep visits entries
// in this order and files in list order.
var defaultEntries = []Entry{
	{
		Dir: "client/src/components/ui/",
		Files: []string{
			"accordion.tsx", "alert-dialog.tsx", "alert.tsx", "aspect-ratio.tsx", "avatar.tsx",
			"badge.tsx", "breadcrumb.tsx", "button-group.tsx", "button.tsx", "calendar.tsx",
			"card.tsx", "carousel.tsx", "chart.tsx", "checkbox.tsx", "collapsible.tsx",
			"command.tsx", "context-menu.tsx", "dialog.tsx", "drawer.tsx", "dropdown-menu.tsx",
			"empty.tsx", "field.tsx", "form.tsx", "hover-card.tsx", "input-group.tsx",
			"input-otp.tsx", "input.tsx", "item.tsx", "kbd.tsx", "label.tsx", "menubar.tsx",
			"navigation-menu.tsx", "pagination.tsx", "popover.tsx", "progress.tsx",
			"radio-group.tsx", "resizable.tsx", "scroll-area.tsx", "select.tsx", "separator.tsx",
			"sheet.tsx", "sidebar.tsx", "skeleton.tsx", "slider.tsx", "sonner.tsx", "spinner.tsx",
			"switch.tsx", "table.tsx", "tabs.tsx", "textarea.tsx", "toggle-group.tsx",
			"toggle.tsx", "tooltip.tsx",
		},
	},
	{
		Dir: "server/",
		Files: []string{
			"accountSecurity.ts", "adminRouter.ts", "auth.comprehensive.test.ts",
			"auth.logout.test.ts", "auth.test.ts", "auth.ts", "authRouter.ts",
			"cryptoWalletRouter.ts", "cryptoWalletSystem.ts", "currencyExchange.ts",
			"db.ts", "dbInit.ts", "degensdenRouter.ts", "degensdenSlots.ts",
			"emailVerification.ts", "gameHistoryTracking.ts", "gameLogic.test.ts",
			"gameLogic.ts", "games.ts", "leaderboardRouter.ts", "leaderboardSystem.ts",
			"liveFeatures.ts", "liveRouter.ts", "osrsDepositWithdraw.ts",
			"osrsGamblingFeatures.ts", "osrsGamblingRouter.ts", "osrsSystem.ts",
			"passwordReset.ts", "provablyFair.ts", "qrcodeSystem.ts", "routers.ts",
			"securityMiddleware.ts", "storage.ts", "trustWalletConfig.ts",
			"trustWalletRouter.ts", "updateModule.ts", "userStatsComprehensive.ts",
			"userStatsRouter.ts", "userStatsSystem.ts", "vipAndLeaderboard.test.ts",
			"vipProgressRouter.ts", "vipProgressSystem.ts", "vipProgressVisualization.ts",
			"wagerSystem.ts", "wallet.comprehensive.test.ts", "wallet.test.ts", "wallet.ts",
			"walletRouter.ts",
		},
	},
	{
		Dir: "server/_core/",
		Files: []string{
			"advancedRateLimiter.ts", "config.ts", "context.ts", "cookies.ts",
			"dataApi.ts", "env.ts", "errorHandler.ts", "imageGeneration.ts",
			"index.ts", "llm.ts", "logger.ts", "map.ts", "notification.ts",
			"oauth.ts", "sdk.ts", "systemRouter.ts", "trpc.ts", "vite.ts",
			"voiceTranscription.ts",
		},
	},
	{
		Dir:   "server/_core/types/",
		Files: []string{"cookie.d.ts", "manusTypes.ts"},
	},
	{
		Dir:   "shared/",
		Files: []string{"const.ts", "types.ts"},
	},
	{
		Dir:   "shared/_core/",
		Files: []string{"errors.ts"},
	},
	{
		Dir:   "drizzle/",
		Files: []string{"schema.ts", "relations.ts"},
	},
	{
		Dir:   "client/src/",
		Files: []string{"App.tsx", "main.tsx", "index.css"},
	},
	{
		Dir:   "client/",
		Files: []string{"index.html"},
	},
	{
		Dir:   "client/src/components/",
		Files: []string{"DashboardLayout.tsx", "DashboardLayoutSkeleton.tsx", "ErrorBoundary.tsx"},
	},
}

// Default returns the built-in layout.
func Default() Layout {
	l, err := New(defaultEntries)
	if err != nil {
		// The built-in table is covered by tests; failing here is a programming error.
		panic("layout: invalid default table: " + err.Error())
	}
	return l
}
