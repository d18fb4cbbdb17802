package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/turbot/pipe-fittings/cmdconfig"

	"github.com/medlearn/mimic-subset/archive"
	"github.com/medlearn/mimic-subset/config"
	"github.com/medlearn/mimic-subset/constants"
	"github.com/medlearn/mimic-subset/filepaths"
	"github.com/medlearn/mimic-subset/report"
	"github.com/medlearn/mimic-subset/source"
	"github.com/medlearn/mimic-subset/subset"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [flags]",
		Short: "Create a random subset of the MIMIC-III database",
		RunE:  runCreateCmd,
	}

	cmdconfig.OnCmd(cmd).
		AddStringFlag("source", "", "Path to the MIMIC-III zip file (mimic-iii-clinical-database-1.4.zip)").
		AddStringFlag("config", "", "Path to an HCL config file (remote sources and setting overrides)").
		AddStringFlag("output", "", "Directory to save the subset to").
		AddIntFlag("sample-size", constants.DefaultSampleSize, "Number of admissions to include").
		AddIntFlag("seed", constants.DefaultSeed, "Random seed for the admission sample").
		AddBoolFlag("force", false, "Write into a non-empty output directory")

	return cmd
}

func runCreateCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputDir := viper.GetString("output")
	if outputDir == "" {
		return errors.New("--output must be specified")
	}

	cfg, archiveSource, err := resolveConfigAndSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer archiveSource.Close()

	if err := filepaths.EnsureOutputDir(outputDir, viper.GetBool("force")); err != nil {
		return err
	}

	archivePath, err := archiveSource.Resolve(ctx)
	if err != nil {
		return err
	}

	a, err := archive.Open(archivePath)
	if err != nil {
		return err
	}
	defer a.Close()

	collector := subset.NewCollector(a, cfg, outputDir)
	if err := registerProgressObserver(collector); err != nil {
		return err
	}

	res, err := collector.Collect(ctx)
	if err != nil {
		return err
	}

	if _, err := report.Write(res); err != nil {
		return err
	}

	fmt.Println("\nSubset creation completed successfully!")
	fmt.Printf("Output directory: %s\n", outputDir)
	return nil
}

// resolveConfigAndSource builds the run config and archive source from the
// command line: either a config file (which may define a remote source), a
// plain --source zip path, or both (flags win over config file settings)
func resolveConfigAndSource(ctx context.Context, cmd *cobra.Command) (*config.SubsetConfig, source.ArchiveSource, error) {
	cfg := &config.SubsetConfig{}

	if configPath := viper.GetString("config"); configPath != "" {
		parsed, err := config.ParseConfigFile(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = parsed
	}

	// flags set explicitly on the command line override config file settings
	if cmd.Flags().Changed("sample-size") {
		sampleSize := viper.GetInt("sample-size")
		cfg.SampleSize = &sampleSize
	}
	if cmd.Flags().Changed("seed") {
		seed := viper.GetInt64("seed")
		cfg.Seed = &seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// a --source path takes precedence over a source block in the config file
	if sourcePath := viper.GetString("source"); sourcePath != "" {
		return cfg, source.NewFileSystemSourceFromPath(sourcePath), nil
	}

	if cfg.Source == nil {
		return nil, nil, errors.New("either --source or a config file with a source block must be specified")
	}

	configData, err := cfg.SourceConfigData()
	if err != nil {
		return nil, nil, err
	}
	archiveSource, err := source.Factory.GetSource(ctx, configData)
	if err != nil {
		return nil, nil, err
	}
	return cfg, archiveSource, nil
}
