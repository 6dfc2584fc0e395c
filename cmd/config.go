package cmd

import (
	"fmt"

	internalApp "github.com/haierkeys/doc-share-service/internal/app"

	"github.com/gookit/goutil/dump"
	"github.com/spf13/cobra"
)

// redacted 配置输出中密码字段的替代值
const redacted = "******"

func init() {
	var configFile string

	configCmd := &cobra.Command{
		Use:   "config [-c config_file]",
		Short: "Print the effective configuration with defaults applied // 打印合并默认值后的配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				configFile = resolveConfigPath()
			}
			cfg, realpath, err := internalApp.LoadConfig(configFile)
			if err != nil {
				return err
			}
			if cfg.Database.Password != "" {
				cfg.Database.Password = redacted
			}
			if cfg.Cache.Password != "" {
				cfg.Cache.Password = redacted
			}
			fmt.Println("# " + realpath)
			dump.P(cfg)
			return nil
		},
	}

	configCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.AddCommand(configCmd)
}
