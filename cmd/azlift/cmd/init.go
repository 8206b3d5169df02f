package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/azlift/azlift/pkg/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

type InitOptions struct {
	OutputPath string
}

var initOpts InitOptions

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter cluster configuration",
	Long:  `Create a starter cluster configuration with an interactive flow`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := RunInit(&initOpts); err != nil {
			log.Error(err, "Failed to create configuration")
			os.Exit(1)
		}
	},
}

func init() {
	flags := InitCmd.Flags()
	flags.StringVarP(&initOpts.OutputPath, "output", "o", "cluster.yaml", "path of the configuration file to write")
	RootCmd.AddCommand(InitCmd)
}

func RunInit(o *InitOptions) error {
	providerType, err := selectProvider()
	if err != nil {
		return err
	}

	location, err := getInput("Location", func(i string) error {
		matched, err := regexp.MatchString(`^[a-z0-9]+$`, i)
		if err != nil || !matched {
			return fmt.Errorf("Invalid Location")
		}
		return nil
	})
	if err != nil {
		return err
	}

	resourceGroupName, err := getInput("Resource Group Name", func(i string) error {
		matched, err := regexp.MatchString(`^[-\w\._\(\)]+$`, i)
		if err != nil || !matched {
			return fmt.Errorf("Invalid Resource Group Name")
		}
		return nil
	})
	if err != nil {
		return err
	}

	subscriptionID, err := getInput("Subscription ID (blank uses the az cli default)", func(i string) error {
		if i != "" && len(i) < 30 {
			return fmt.Errorf("Invalid Subscription ID")
		}
		return nil
	})
	if err != nil {
		return err
	}

	sshUser, err := getInput("SSH User", func(i string) error {
		matched, err := regexp.MatchString(`^[a-z_][a-z0-9_-]*$`, i)
		if err != nil || !matched {
			return fmt.Errorf("Invalid SSH User")
		}
		return nil
	})
	if err != nil {
		return err
	}

	cfg := &config.Config{
		Provider: config.ProviderConfig{
			Type:           providerType,
			Location:       location,
			ResourceGroup:  resourceGroupName,
			SubscriptionID: subscriptionID,
		},
		Auth: config.AuthConfig{
			SSHUser: sshUser,
		},
	}

	if providerType == config.ProviderACI {
		image, err := getInput("Container Image", func(i string) error {
			if i == "" {
				return fmt.Errorf("Invalid Container Image")
			}
			return nil
		})
		if err != nil {
			return err
		}
		containerName, err := getInput("Container Group Name", func(i string) error {
			matched, err := regexp.MatchString(`^[a-z][-a-z0-9]*$`, i)
			if err != nil || !matched {
				return fmt.Errorf("Invalid Container Group Name")
			}
			return nil
		})
		if err != nil {
			return err
		}
		cfg.Docker = config.DockerConfig{
			Image:         image,
			ContainerName: containerName,
		}
	}

	if err := config.Save(cfg, o.OutputPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %s, run azlift bootstrap -f %s\n", o.OutputPath, o.OutputPath)
	return nil
}

func selectProvider() (string, error) {
	prompt := promptui.Select{
		Label: "Select Provider",
		Items: []string{config.ProviderAzure, config.ProviderACI},
	}

	_, result, err := prompt.Run()

	if err == promptui.ErrInterrupt {
		os.Exit(-1)
	}

	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return "", err
	}
	return result, nil
}

func getInput(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}

	result, err := prompt.Run()

	if err == promptui.ErrInterrupt {
		os.Exit(-1)
	}

	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return "", err
	}

	return result, nil
}
