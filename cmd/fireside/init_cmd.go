package main

import (
	"fmt"

	"github.com/firesidecapital/fireside-go/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	path := config.Path()
	if flagConfig != "" {
		path = flagConfig
	}

	if flagConfig == "" && config.Exists() {
		return errors.Errorf("config already exists at %s", path)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("  Wrote %s\n", path)
	return nil
}
