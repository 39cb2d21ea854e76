package cmd

import (
	"fmt"
	"strings"

	"lock-check/internal/migration"
)

// printReport renders the batch outcome the way the hook has always
// reported: one status line per migration, then a summary block with
// remediation hints when the commit is blocked.
func printReport(result migration.BatchResult, cfg *CheckConfig) {
	fmt.Printf("🔍 Pre-commit: checking %d migrations for large table locks\n", len(result.Checked))
	fmt.Printf("📊 Monitoring tables: %s\n", strings.Join(cfg.Tables, ", "))
	fmt.Printf("🚫 COMMIT BLOCKED at: %d+ locked tables\n", cfg.MinTables)
	fmt.Println(strings.Repeat("-", 60))

	for _, res := range result.Checked {
		switch {
		case res.ShouldBlock:
			fmt.Printf("❌ %s\n", res.File)
			fmt.Printf("   🚨 BLOCKED %d LARGE TABLES: %s\n", res.LockedCount, strings.Join(res.LockedTables, ", "))
			if cfg.Verbose && len(res.Operations) > 0 {
				fmt.Println("   📋 Dangerous operations:")
				for _, op := range res.Operations {
					fmt.Printf("     • %s -> %s\n", op.Description(), op.Table)
				}
			}
		case res.Ignored:
			fmt.Printf("⏭️  %s - skipped (ignore directive)\n", res.File)
		case res.LockedCount == 0:
			fmt.Printf("✅ OK %s - locked tables: 0\n", res.File)
		default:
			fmt.Printf("⚠️  Warning (%d table) %s - locked tables: %d\n", res.LockedCount, res.File, res.LockedCount)
		}
	}

	fmt.Println(strings.Repeat("-", 60))
	if len(result.Critical) == 0 {
		fmt.Println("✅ All migrations passed check! Commit allowed.")
		return
	}

	fmt.Println("🚫 COMMIT BLOCKED!")
	fmt.Printf("🚨 Critical migrations found (%d):\n", len(result.Critical))
	for _, mig := range result.Critical {
		fmt.Printf("\n   📁 %s\n", mig.File)
		fmt.Printf("   📊 Locked tables: %d\n", mig.LockedCount)
		fmt.Printf("   🗂️  Tables: %s\n", strings.Join(mig.LockedTables, ", "))
		if mig.CriticalRisk {
			fmt.Println("   🔥 CRITICAL RISK: 3+ large tables locked at once")
		}
		if cfg.Verbose {
			fmt.Println("   ⚠️  Dangerous operations:")
			for _, op := range mig.Operations {
				fmt.Printf("     • %s\n", op.Description())
			}
		}
	}

	fmt.Println("\n💡 HOW TO FIX:")
	fmt.Println("   1. Split migration into multiple parts")
	fmt.Println("   2. Use `atomic = False` in migration class")
	fmt.Println("   3. Execute operations sequentially in different migrations")
	fmt.Println("   4. For urgent fixes use: git commit --no-verify")
	fmt.Println("\n🔒 Commit BLOCKED due to DB lock risk!")
}
