// validate_farm 检查农场配置文件能否被加载并通过校验
//
// 用法：
//
//	go run ./cmd/validate_farm [-config data/farm.yaml]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/pumpkinpatch/pkg/config"
)

var configPath = flag.String("config", "data/farm.yaml", "Farm config file to validate")

func main() {
	flag.Parse()

	cfg, err := config.LoadFarmConfig(*configPath)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确，校验通过\n")
	fmt.Printf("✅ 田地: %d 行 × %d 格，初始解锁 %d 行\n",
		len(cfg.Field.RowXs), cfg.Field.CellsPerRow(), len(cfg.Field.UnlockedRows))
	fmt.Printf("✅ 升级项: %d 个\n", len(cfg.Economy.Upgrades))
	for i, u := range cfg.Economy.Upgrades {
		fmt.Printf("   [%d] %-12s %-10s 价格 %.1f\n", i+1, u.Name, u.Category, u.Price)
	}
	fmt.Printf("✅ 待解锁行: %d 个\n", len(cfg.Economy.RowCosts))
}
