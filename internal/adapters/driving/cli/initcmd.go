package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/chai-engine/promptchain/internal/adapters/driven/config/file"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a template run configuration file",
	Long: `Writes a template promptchain.toml (or the --config path) for you to
fill in. Refuses to overwrite an existing file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			path = configfile.DefaultRunConfigPath
		}
		if err := configfile.WriteRunConfigTemplate(path); err != nil {
			return err
		}
		cmd.Printf("Template run configuration written to %s\n", path)
		cmd.Println("Fill in the required paths, then run 'promptchain run'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
