package ui

import (
	"fmt"
	"math"
	"time"

	"ss58hunter/pkg/generator"
	"ss58hunter/pkg/generator/substrate"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// PrintSearchInfo displays the resolved search configuration and its odds
// before the workers start.
func PrintSearchInfo(network substrate.NetworkSpec, spec substrate.PatternSpec, workers, target int, odds substrate.Odds) {
	fmt.Printf("\n    %s🚀 SEARCHING%s %s%s%s", ColorGreen+ColorBold, ColorReset, ColorBold+ColorCyan, spec.Term, ColorReset)

	switch spec.Position {
	case substrate.Prefix:
		fmt.Printf(" %swithin the first %d characters%s", ColorDim, spec.EffectiveWithin(), ColorReset)
	case substrate.Suffix:
		fmt.Printf(" %swithin the last %d characters%s", ColorDim, spec.EffectiveWithin(), ColorReset)
	case substrate.Anywhere:
		fmt.Printf(" %sanywhere in the address%s", ColorDim, ColorReset)
	}

	fmt.Printf("\n    %s🌐 Network%s  %s (prefix %d)\n", ColorPurple+ColorBold, ColorReset, network.Name, network.SS58Prefix)
	fmt.Printf("    %s💻 Workers%s  %d", ColorPurple+ColorBold, ColorReset, workers)
	if target > 1 {
		fmt.Printf("  %s│%s  %d wallets", ColorDim, ColorReset, target)
	}
	fmt.Println()

	if math.IsInf(odds.ExpectedAttempts, 1) {
		fmt.Printf("    %s🎲 Odds%s     pattern cannot fit, the search will never finish\n\n",
			ColorPurple+ColorBold, ColorReset)
		return
	}
	fmt.Printf("    %s🎲 Odds%s     1 in %s per address %s(%d fixed chars, %d windows)%s\n\n",
		ColorPurple+ColorBold, ColorReset,
		FormatNumber(uint64(odds.ExpectedAttempts)),
		ColorDim, odds.FixedChars, odds.Windows, ColorReset)
}

// PrintProgress redraws the single-line progress readout.
func PrintProgress(p generator.Progress, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	fmt.Printf("\r    %s%s%s %s%s%s │ %s%s%s │ %s",
		ColorCyan, spinner, ColorReset,
		ColorGreen+ColorBold, FormatRate(p.Rate), ColorReset,
		ColorYellow, FormatNumber(p.Attempts), ColorReset,
		FormatDuration(p.Elapsed))

	if p.Target > 1 {
		fmt.Printf(" │ %s%d/%d found%s", ColorGreen, p.Found, p.Target, ColorReset)
	}
	if p.HasETA {
		if p.Overdue {
			fmt.Printf(" │ %sover by %s%s", ColorRed, FormatDuration(p.ETA), ColorReset)
		} else {
			fmt.Printf(" │ %s~%s left%s", ColorDim, FormatDuration(p.ETA), ColorReset)
		}
	}
	if p.HasLuck {
		fmt.Printf(" │ %s%.0f%% luck%s", luckColor(p.Luck), p.Luck, ColorReset)
	}
	fmt.Print("    ")
}

func luckColor(luck float64) string {
	switch {
	case luck >= 150:
		return ColorGreen
	case luck < 75:
		return ColorRed
	default:
		return ColorYellow
	}
}

// PrintSuccess shows one found wallet. The secret is only echoed when no
// file was written; otherwise the path is shown instead.
func PrintSuccess(result generator.Result, savedPath string) {
	ClearLine()
	fmt.Printf("\n    %s%s✨ ADDRESS FOUND%s\n\n", ColorGreen, ColorBold, ColorReset)
	fmt.Printf("    %s📍 ADDRESS%s\n", ColorCyan+ColorBold, ColorReset)
	fmt.Printf("       %s%s%s%s\n\n", ColorGreen, ColorBold, result.Address, ColorReset)

	if savedPath != "" {
		fmt.Printf("    %s💾 SAVED%s\n", ColorPurple+ColorBold, ColorReset)
		fmt.Printf("       %s\n\n", savedPath)
	} else {
		label := "🔑 SEED"
		if result.Candidate.FromMnemonic {
			label = "🔑 MNEMONIC"
		}
		fmt.Printf("    %s%s%s\n", ColorPurple+ColorBold, label, ColorReset)
		fmt.Printf("       %s%s%s\n\n", ColorYellow, result.Candidate.Secret, ColorReset)
	}

	fmt.Printf("    %s⏱   %s%s   %s│   %s📊  %s%s",
		ColorCyan, ColorReset+ColorBold, FormatDuration(result.Elapsed),
		ColorDim,
		ColorPurple, ColorReset+ColorBold, FormatNumber(result.AttemptsForResult))
	if result.Luck > 0 {
		fmt.Printf("   %s│   %s🍀  %s%.0f%%", ColorDim, luckColor(result.Luck), ColorBold, result.Luck)
	}
	fmt.Printf("%s\n", ColorReset)
	fmt.Printf("    %s%s⚠  KEEP YOUR SECRET SAFE!%s\n", ColorRed, ColorBold, ColorReset)
}

// PrintSummary prints the end-of-run totals.
func PrintSummary(stats generator.Stats, target int) {
	ClearLine()
	fmt.Printf("\n    %s%d/%d wallets%s │ %s attempts │ %s │ %s avg\n",
		ColorBold, stats.Found, target, ColorReset,
		FormatNumber(stats.Attempts),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))),
		FormatRate(stats.Rate))
}

// ClearLine clears the current line
func ClearLine() {
	fmt.Print("\r                                                                                              \r")
}

// FormatRate formats an attempts-per-second rate
func FormatRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
