package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd Lệnh gốc
var rootCmd = &cobra.Command{
	Use:   "aiagent",
	Short: "Trợ lý hội thoại tiếng Việt với skill thời tiết",
	Long: `Trợ lý hội thoại: phân loại ý định tin nhắn (thời tiết hoặc trò chuyện),
tra cứu thời tiết theo địa danh Việt Nam qua Open-Meteo và trò chuyện qua LLM,
kèm bộ nhớ hội thoại theo phiên và log hội thoại.`,
}

// Execute Chạy CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "đường dẫn file cấu hình (mặc định tìm config.yaml)")
}
