/*
Copyright © 2014-2026 the SOILWAT2-sub002 authors.
This file is part of SOILWAT2-sub002.

SOILWAT2-sub002 is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SOILWAT2-sub002 is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SOILWAT2-sub002.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command soilwat is a command-line interface for the SOILWAT2-sub002
// soil-water and soil-temperature dynamics core.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DrylandEcology/SOILWAT2-sub002/internal/config"
)

const version = "0.1.0"

var (
	configFile string

	// Config holds the current run's configuration, loaded by
	// PersistentPreRunE before any subcommand runs.
	Config *config.RunConfig

	// Log is the shared logger wired into every Site this run constructs.
	Log = logrus.New()
)

// RootCmd is the soilwat executable's top-level command.
var RootCmd = &cobra.Command{
	Use:   "soilwat",
	Short: "A point-based soil-water and soil-temperature dynamics core.",
	Long: `soilwat steps a layered soil column forward day by day, tracking
soil water content, matric potential, and soil temperature for dryland and
grassland sites. Use the subcommands below to run a simulation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startup(configFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		completedMessage()
	},
}

// startup reads the configuration file, sets up the logger, and prints a
// welcome banner, mirroring the teacher's Startup/Config pattern.
func startup(configFile string) error {
	rc, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}
	Config = rc

	if lvl, lvlErr := logrus.ParseLevel(Config.LogLevel); lvlErr == nil {
		Log.SetLevel(lvl)
	}

	fmt.Println("\n" +
		"------------------------------------------------\n" +
		"                    Welcome!\n" +
		"   Soil Water & Soil Temperature Dynamics Core   \n" +
		"                Version " + version + "                  \n" +
		"          the SOILWAT2-sub002 authors            \n" +
		"------------------------------------------------")
	return nil
}

func completedMessage() {
	fmt.Println("\n" +
		"------------------------------------\n" +
		"           soilwat Completed!\n" +
		"------------------------------------")
}

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./soilwat.toml", "configuration file location")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this build of soilwat.",

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("soilwat v%s\n", version)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
	},
}
