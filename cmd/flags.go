package cmd

import "github.com/spf13/cobra"

// AddProviderFlag adds the --provider/-p flag.
func AddProviderFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVarP(dest, "provider", "p", "", "Override provider (gemini or mock)")
	if err := cmd.RegisterFlagCompletionFunc("provider", providerFlagCompletion); err != nil {
		panic("failed to register provider completion: " + err.Error())
	}
}

// AddModelFlag adds the --model/-m flag.
func AddModelFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVarP(dest, "model", "m", "", "Override the model (e.g. gemini-2.5-pro)")
}

// AddJSONFlag adds the --json flag.
func AddJSONFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVar(dest, "json", false, "Print JSON instead of formatted output")
}

// AddWidthFlag adds the --width flag.
func AddWidthFlag(cmd *cobra.Command, dest *int) {
	cmd.Flags().IntVar(dest, "width", 0, "Wrap width (default: terminal width)")
}

func providerFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"gemini", "mock"}, cobra.ShellCompDirectiveNoFileComp
}
