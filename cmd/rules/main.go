package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fourthandlong/playoffpool/internal/rules"
)

func main() {
	book := rules.Default()
	if len(os.Args) > 1 {
		var err error
		book, err = rules.Load(os.Args[1])
		if err != nil {
			panic(err)
		}
	}

	fmt.Println("Rounds:")
	for _, w := range book.Weights {
		fmt.Printf("  %d  %-24s x%s\n", w.Round, w.Name, w.Weight)
	}
	fmt.Printf("Units: winner %d, accuracy %d, jackpot %d\n", book.WinnerUnit, book.AccuracyUnit, book.JackpotUnit)
	fmt.Printf("Multiplier bounds: [%d, %d]\n", book.Multiplier.Min, book.Multiplier.Max)

	fmt.Printf("Accuracy splits (%s):\n", book.Splits.Kind)
	for k := 1; k <= 6; k++ {
		shares := book.Splits.Policy.Shares(k)
		parts := make([]string, len(shares))
		for i, bps := range shares {
			parts[i] = fmt.Sprintf("%.2f%%", float64(bps)/100)
		}
		fmt.Printf("  %d winners: %s\n", k, strings.Join(parts, " / "))
	}
}
