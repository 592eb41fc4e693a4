package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vela-sec/vela/internal/logs"
	"github.com/vela-sec/vela/internal/message"
	o "github.com/vela-sec/vela/pkg/options"
	"github.com/vela-sec/vela/pkg/types"
)

var (
	cfgFile string
	quiet   bool
	noColor bool
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vela",
	Short: "Vela exports Microsoft Graph audit and identity-risk data to disk.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		message.SetQuiet(quiet)
		message.SetNoColor(noColor)
		logs.SetVerbose(verbose)
		logs.ConsoleLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vela.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress status messages")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringP(o.OutputOpt.Name, o.OutputOpt.Short, o.OutputOpt.Value, o.OutputOpt.Description)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".vela" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vela")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func options2Flag(options []*types.Option, cmd *cobra.Command) {
	for _, option := range options {
		option2Flag(option, cmd)
	}
}

func option2Flag(option *types.Option, cmd *cobra.Command) {
	switch option.Type {
	case types.String:
		cmd.Flags().StringP(option.Name, option.Short, option.Value, option.Description)
	case types.Bool:
		value, _ := strconv.ParseBool(option.Value)
		cmd.Flags().BoolP(option.Name, option.Short, value, option.Description)
	case types.Int:
		intValue, _ := strconv.Atoi(option.Value)
		cmd.Flags().IntP(option.Name, option.Short, intValue, option.Description)
	}

	if option.Required {
		cmd.MarkFlagRequired(option.Name)
	}
}

// getOpts reads flag values into fresh copies of the option definitions and
// validates them. Global options ride along.
func getOpts(cmd *cobra.Command, defs []*types.Option) []*types.Option {
	opts := getGlobalOpts(cmd)
	opts = append(opts, getOptsFromCmd(cmd, defs)...)

	if err := o.ValidateOptions(opts); err != nil {
		message.Error("%v", err)
		os.Exit(1)
	}

	return opts
}

func getGlobalOpts(cmd *cobra.Command) []*types.Option {
	opts := []*types.Option{}
	output := o.OutputOpt
	output.Value, _ = cmd.Flags().GetString(output.Name)
	opts = append(opts, &output)

	return opts
}

func getOptsFromCmd(cmd *cobra.Command, defs []*types.Option) []*types.Option {
	opts := []*types.Option{}
	for _, def := range defs {
		opt := *def
		switch opt.Type {
		case types.String:
			opt.Value, _ = cmd.Flags().GetString(opt.Name)
		case types.Bool:
			value, _ := cmd.Flags().GetBool(opt.Name)
			opt.Value = strconv.FormatBool(value)
		case types.Int:
			value, _ := cmd.Flags().GetInt(opt.Name)
			opt.Value = strconv.Itoa(value)
		}
		opts = append(opts, &opt)
	}
	return opts
}

func optValue(opts []*types.Option, name string) string {
	if opt := o.GetOptionByName(name, opts); opt != nil {
		return opt.Value
	}
	return ""
}

func optInt(opts []*types.Option, name string) int {
	v, _ := strconv.Atoi(optValue(opts, name))
	return v
}

func fatal(err error) {
	message.Error("%v", err)
	os.Exit(1)
}
