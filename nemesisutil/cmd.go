/*
Copyright © 2026 the Nemesis authors.
This file is part of Nemesis.

Nemesis is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Nemesis is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Nemesis.  If not, see <http://www.gnu.org/licenses/>.
*/

package nemesisutil

import (
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nemesis"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives progress messages and warnings.
var Log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}

	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path of the Exodus mesh file to create.`,
			shorthand:  "o",
			defaultVal: "mesh.exo",
			flagsets:   []*pflag.FlagSet{createCmd.Flags(), importCmd.Flags()},
		},
		{
			name: "File",
			usage: `
              File specifies the path of an existing Exodus mesh file.`,
			shorthand:  "f",
			defaultVal: "mesh.exo",
			flagsets:   []*pflag.FlagSet{putCmd.Flags(), getCmd.Flags(), infoCmd.Flags()},
		},
		{
			name: "MeshFile",
			usage: `
              MeshFile specifies a TOML file holding the complete mesh
              definition, including named side sets. If it is set, the
              Mesh.* options are ignored.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Mesh.Title",
			usage: `
              Mesh.Title specifies the title stored in the mesh file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Mesh.NumDim",
			usage: `
              Mesh.NumDim specifies the number of spatial dimensions.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Mesh.NumNodes",
			usage: `
              Mesh.NumNodes specifies the number of nodes in the mesh.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Mesh.NumElem",
			usage: `
              Mesh.NumElem specifies the number of elements in the mesh.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Mesh.SideSets",
			usage: `
              Mesh.SideSets specifies the side sets to define, each in the
              format 'id:numSides' or 'id:numSides:numDistFact'. Side sets
              with zero sides are stored as NULL side sets.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "SideSet",
			usage: `
              SideSet specifies the ID of the side set to access.`,
			shorthand:  "s",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{putCmd.Flags(), getCmd.Flags()},
		},
		{
			name: "Start",
			usage: `
              Start specifies the 1-based position of the first side to
              access.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{putCmd.Flags(), getCmd.Flags()},
		},
		{
			name: "Count",
			usage: `
              Count specifies the number of sides to read. The default is -1,
              which reads through the last side.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{getCmd.Flags()},
		},
		{
			name: "Input",
			usage: `
              Input specifies a text file of 'element side' pairs, one per
              line, to store in the side set. Use '-' for standard input.`,
			shorthand:  "i",
			defaultVal: "-",
			flagsets:   []*pflag.FlagSet{putCmd.Flags()},
		},
		{
			name: "GambitFile",
			usage: `
              GambitFile specifies the Gambit neutral file to import.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{importCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NEMESIS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	Root.AddCommand(versionCmd)
	Root.AddCommand(createCmd)
	Root.AddCommand(putCmd)
	Root.AddCommand(getCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(importCmd)
}

// setConfig reads in the configuration file, if one is specified.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("nemesis: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "nemesis",
	Short: "Create and edit the side sets of Exodus II mesh files.",
	Long: `nemesis creates Exodus II mesh files and reads and writes their side sets,
either in full or in pieces. Use the subcommands specified below to access the
functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'NEMESIS_var' where 'var' is the
name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of nemesis.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("nemesis v%s (Exodus API %.2f)\n", nemesis.Version, nemesis.APIVersion)
	},
	DisableAutoGenTag: true,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a mesh file",
	Long: `create writes a new Exodus mesh file with the global sizes and side sets
given by the Mesh.* options or by a mesh definition file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := meshParams(Cfg)
		if err != nil {
			return err
		}
		return Create(os.ExpandEnv(Cfg.GetString("OutputFile")), p)
	},
	DisableAutoGenTag: true,
}

var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Store sides in a side set",
	Long: `put reads 'element side' pairs and stores them in the specified side set,
beginning at position Start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, closeIn, err := openInput(Cfg.GetString("Input"))
		if err != nil {
			return err
		}
		defer closeIn()
		_, err = Put(os.ExpandEnv(Cfg.GetString("File")), Cfg.GetInt("SideSet"), Cfg.GetInt("Start"), in)
		return err
	},
	DisableAutoGenTag: true,
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print sides from a side set",
	Long:  `get prints 'element side' pairs from the specified side set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Get(os.ExpandEnv(Cfg.GetString("File")), Cfg.GetInt("SideSet"),
			Cfg.GetInt("Start"), Cfg.GetInt("Count"), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the side sets in a mesh file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Info(os.ExpandEnv(Cfg.GetString("File")), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import Gambit boundary conditions",
	Long: `import reads the element boundary conditions of a Gambit neutral file and
writes them as side sets to a new Exodus mesh file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Import(os.ExpandEnv(Cfg.GetString("GambitFile")), os.ExpandEnv(Cfg.GetString("OutputFile")))
	},
	DisableAutoGenTag: true,
}
