package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rules and speed table",
	Long: `Load the rules and speed table the same way a game would (--rules and
--speed, then ~/.blockfall/configs, then ./configs, then the built-in defaults)
and print the result as YAML. The output is a valid starting point for a
custom file.`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func runRules(cmd *cobra.Command, args []string) {
	s := setupFromFlags()

	out, err := yaml.Marshal(struct {
		Rules any `yaml:"rules"`
		Speed any `yaml:"speed"`
	}{s.rules, s.speed})
	if err != nil {
		exitf("Error encoding rules: %v\n", err)
	}
	fmt.Print(string(out))
}
