package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/azlift/azlift/pkg/bootstrap"
	"github.com/azlift/azlift/pkg/config"
	logf "github.com/azlift/azlift/pkg/log"
)

var log = logf.Log.WithName("azlift")

type BootstrapOptions struct {
	ConfigPath string
	OutputPath string
}

var bo = &BootstrapOptions{}

func init() {
	BootstrapCmd.Flags().StringVarP(&bo.ConfigPath, "config", "f", "", "Cluster configuration YAML. Required.")
	BootstrapCmd.MarkFlagRequired("config")
	BootstrapCmd.Flags().StringVarP(&bo.OutputPath, "output", "o", "", "Where to write the augmented configuration, stdout if unset")
	RootCmd.AddCommand(BootstrapCmd)
}

var BootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Bootstrap the Azure environment for a cluster",
	Long:  `Ensure resource group, identity, SSH keys and network exist, then emit the augmented cluster configuration`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := RunBootstrap(bo); err != nil {
			log.Error(err, "Failed to bootstrap cluster environment")
			os.Exit(1)
		}
	},
}

func RunBootstrap(bo *BootstrapOptions) error {
	cfg, err := config.Load(bo.ConfigPath)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[11], 200*time.Millisecond)
	s.Color("green")
	s.Suffix = fmt.Sprintf(" Bootstrapping environment in group %s (%s)",
		cfg.Provider.ResourceGroup, cfg.Provider.Location)
	s.Start()
	start := time.Now()
	cfg, err = bootstrap.Bootstrap(context.Background(), cfg)
	s.Stop()

	if err != nil {
		fmt.Fprintf(s.Writer, " ✗ Failed to bootstrap environment %v\n", err)
		return err
	}
	fmt.Fprintf(s.Writer, " ✓ Successfully bootstrapped environment in %s\n", time.Since(start))

	if bo.OutputPath != "" {
		return config.Save(cfg, bo.OutputPath)
	}

	buf, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(buf))
	return nil
}
