package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"dump-salvage/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	driver  string
	dsn     string
	table   string
	verbose bool
)

var RootCmd = &cobra.Command{
	Use:   "dump-salvage",
	Short: "Recover one table from a MySQL dump",
	Long: `
     _                                _                       
  __| |_   _ _ __ ___  _ __    ___  __ _| |_   ____ _  __ _  ___ 
 / _' | | | | '_ ' _ \| '_ \  / __|/ _' | \ \ / / _' |/ _' |/ _ \
| (_| | |_| | | | | | | |_) | \__ \ (_| | |\ V / (_| | (_| |  __/
 \__,_|\__,_|_| |_| |_| .__/  |___/\__,_|_| \_/ \__,_|\__, |\___|
                      |_|                             |___/      

DUMP SALVAGE - pull wp_posts (or any one table) out of a MySQL dump
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !viper.GetBool("verbose") {
			log.SetOutput(io.Discard)
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dump-salvage.yaml)")
	RootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Target driver: sqlite, postgres, mysql, sqlserver")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Target DSN (file path for sqlite)")
	RootCmd.PersistentFlags().StringVarP(&table, "table", "t", "", "Table to recover")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each step and every statement outcome")

	viper.BindPFlag("target.driver", RootCmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("target.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("table", RootCmd.PersistentFlags().Lookup("table"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("target.driver", "sqlite")
	viper.SetDefault("table", schema.DefaultTable)
	viper.SetDefault("post_types", []string{"post", "page"})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("dump-salvage")
		viper.SetConfigType("yaml")
	}

	// DUMP_SALVAGE_TARGET_DSN overrides target.dsn
	viper.SetEnvPrefix("dump_salvage")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}
