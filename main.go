package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/decker502/pumpkinpatch/pkg/app"
	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/embedded"
	"github.com/decker502/pumpkinpatch/pkg/sim"
	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	headless   = flag.Bool("headless", false, "Run without a window and print a summary")
	steps      = flag.Int("steps", 36000, "Number of steps in headless mode")
	dt         = flag.Float64("dt", 1.0/60.0, "Step length in seconds for headless mode")
	seed       = flag.Int64("seed", 0, "Random seed (0 = time based)")
	configPath = flag.String("config", "", "Farm config file (default: embedded data/farm.yaml)")
	autoBuy    = flag.Bool("autobuy", false, "Headless mode: buy the cheapest affordable upgrade or row each step")
	foragers   = flag.Bool("foragers", true, "Headless mode: spawn foragers on the configured interval")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	farm, err := loadFarmConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load farm config: %v", err)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	if *headless {
		runHeadless(farm, runSeed)
		return
	}

	game, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Seed:        runSeed,
		Farm:        farm,
		StorageName: "pumpkinpatch",
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Pumpkin Patch")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// loadFarmConfig 优先读取命令行指定的文件，否则使用嵌入的默认配置
func loadFarmConfig(path string) (*config.FarmConfig, error) {
	if path != "" {
		return config.LoadFarmConfig(path)
	}
	data, err := embedded.ReadFile(embedded.FarmConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseFarmConfig(data)
}

// runHeadless 不打开窗口运行固定步数，输出经济统计
func runHeadless(farm *config.FarmConfig, runSeed int64) {
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	s := sim.New(farm, runSeed, nil)
	s.SetForagerSpawning(*foragers)
	start := time.Now()
	for i := 0; i < *steps; i++ {
		s.Step(*dt)
		if *autoBuy {
			s.BuyCheapest()
		}
	}

	view := s.View()
	fmt.Printf("seed %d, %s steps, %.1fs simulated in %s\n",
		runSeed, humanize.Comma(int64(s.Steps())), s.Elapsed(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("balance %s, earned %s\n", view.BalanceText, humanize.Comma(int64(view.TotalEarned)))
	fmt.Printf("planters %d, harvesters %d, foragers on field %d (auto spawn %v)\n",
		s.CountWorkers(components.RolePlanter), s.CountWorkers(components.RoleHarvester), s.CountForagers(), s.ForagerSpawning())
	for _, u := range view.Upgrades {
		fmt.Printf("  %-12s rank %-3s next %s\n", u.Name, u.RankText, u.PriceText)
	}
}
