package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List next-piece randomizers",
	Long:  `Shows every randomizer that can be passed to --randomizer.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No randomizers available.")
		return
	}

	fmt.Println("Available randomizers:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, s := range sources {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxNameLen, s.Name, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'blockfall simulate --randomizer <name>' to use one.")
}
