package cmd

import (
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/mgatere/termfolio/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage model provider profiles",
	Long:  `Manage the profiles that choose which model provider answers unknown commands.`,
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// profileArg returns args[0], or lets the user pick one of names.
func profileArg(args []string, names []string, label string) string {
	if len(args) > 0 {
		return args[0]
	}
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}
	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func keyStatus(p config.Profile) string {
	if p.APIKey != "" {
		return "Set (hidden for security)"
	}
	return "Not set"
}

func providerOf(p config.Profile) string {
	if p.Provider == "" {
		return config.ProviderGemini
	}
	return p.Provider
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Provider: %s\n", providerOf(profile))
			fmt.Printf("    Model: %s\n", profile.Model)
			if profile.BaseURL != "" {
				fmt.Printf("    Base URL: %s\n", profile.BaseURL)
			}
			fmt.Printf("    API Key: %s\n", keyStatus(profile))
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(args, cfg.ProfileNames(), "Select profile to show")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Provider: %s\n", providerOf(profile))
		fmt.Printf("Model: %s\n", profile.Model)
		fmt.Printf("Base URL: %s\n", profile.BaseURL)
		fmt.Printf("API Key: %s\n", keyStatus(profile))
	},
}

var currentProfileCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active profile and whether it can reach its provider",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Profile: %s\n", cfg.ActiveProfile)
		fmt.Printf("Provider: %s\n", cfg.GetProvider())
		fmt.Printf("Model: %s\n", cfg.GetModel())
		if err := cfg.RequireCredential(); err != nil {
			fmt.Printf("Status: NOT CONFIGURED (%v)\n", err)
			return
		}
		fmt.Println("Status: OK")
	},
}

// promptProfile asks for every profile field, starting from p.
func promptProfile(p config.Profile) config.Profile {
	providers := config.Providers()
	cursor := 0
	for i, name := range providers {
		if name == providerOf(p) {
			cursor = i
		}
	}
	providerPrompt := promptui.Select{
		Label:     "Provider",
		Items:     providers,
		CursorPos: cursor,
	}
	_, provider, err := providerPrompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	if provider != p.Provider {
		p.Model = ""
	}
	p.Provider = provider

	apiKeyPrompt := promptui.Prompt{
		Label:   "API Key",
		Default: p.APIKey,
		Mask:    '*',
	}
	p.APIKey, err = apiKeyPrompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	model := p.Model
	if model == "" {
		model = config.DefaultModel(provider)
	}
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: model,
	}
	p.Model, err = modelPrompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	baseURLPrompt := promptui.Prompt{
		Label:   "Base URL (optional)",
		Default: p.BaseURL,
	}
	p.BaseURL, err = baseURLPrompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	return p
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			var err error
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(config.Profile{})

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(args, cfg.ProfileNames(), "Select profile to edit")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(profile)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(args, cfg.ProfileNames(), "Select profile to delete")
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		removeProfile(cfg, profileName)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

// removeProfile deletes name and keeps a usable active profile, recreating the
// default one when the last profile goes.
func removeProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)

	if len(cfg.Profiles) == 0 {
		cfg.Profiles["default"] = config.Profile{
			Provider: config.ProviderGemini,
			Model:    config.DefaultModel(config.ProviderGemini),
		}
	}
	if _, ok := cfg.Profiles[cfg.ActiveProfile]; !ok {
		cfg.ActiveProfile = cfg.ProfileNames()[0]
	}
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		others := make([]string, 0, len(cfg.Profiles))
		for _, name := range cfg.ProfileNames() {
			if name != cfg.ActiveProfile {
				others = append(others, name)
			}
		}
		if len(args) == 0 && len(others) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}

		profileName := profileArg(args, others, "Select profile to switch to")
		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(currentProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
