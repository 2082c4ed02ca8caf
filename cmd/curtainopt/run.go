package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/condor86/CurveGrowthSystem/pkg/evaluator"
	"github.com/condor86/CurveGrowthSystem/pkg/iox"
	"github.com/condor86/CurveGrowthSystem/pkg/nsga2"
	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

const dateLayout = "2006-01-02"

// siteConfig mirrors evaluator.Site in JSON-friendly form (plain dates and
// hour offsets instead of time.Time/time.Duration).
type siteConfig struct {
	LatitudeDeg         float64 `json:"latitudeDeg"`
	LongitudeDeg        float64 `json:"longitudeDeg"`
	TZOffsetHours       float64 `json:"tzOffsetHours"`
	MinElevationDeg     float64 `json:"minElevationDeg"`
	SummerDate          string  `json:"summerDate"`
	WinterDate          string  `json:"winterDate"`
	WindowStartHour     float64 `json:"windowStartHour"`
	WindowEndHour       float64 `json:"windowEndHour"`
	SampleIntervalHours float64 `json:"sampleIntervalHours"`
}

type roomConfig struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	CellSize float64 `json:"cellSize"`
}

// appConfig is the curtainopt-level JSON configuration: input/output
// locations, NSGA-II tunables, site geometry, and room dimensions.
type appConfig struct {
	InDir  string `json:"inDir"`
	OutDir string `json:"outDir"`

	PopulationSize int     `json:"populationSize"`
	Generations    int     `json:"generations"`
	CrossoverRate  float64 `json:"crossoverRate"`
	MutationRate   float64 `json:"mutationRate"`
	SBXEta         float64 `json:"sbxEta"`
	MutationEta    float64 `json:"mutationEta"`
	Seed           int     `json:"seed"`
	Parallelism    int     `json:"parallelism"`

	Site siteConfig `json:"site"`
	Room roomConfig `json:"room"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		InDir:          ".",
		OutDir:         "out",
		PopulationSize: 50,
		Generations:    100,
		CrossoverRate:  0.9,
		SBXEta:         20,
		MutationEta:    20,
		Parallelism:    1,
		Site: siteConfig{
			LatitudeDeg:         32.0603,
			LongitudeDeg:        118.7969,
			TZOffsetHours:       8,
			MinElevationDeg:     0,
			SummerDate:          "2025-06-21",
			WinterDate:          "2025-12-21",
			WindowStartHour:     8,
			WindowEndHour:       16,
			SampleIntervalHours: 2,
		},
		Room: roomConfig{Width: 1000, Height: 1000, CellSize: 10},
	}
}

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load inputs, run the NSGA-II optimization, and write result files",
	RunE:  runOptimization,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a JSON config overriding the defaults")
	rootCmd.AddCommand(runCmd)
}

func loadAppConfig(path string) appConfig {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg
	}
	b, err := os.ReadFile(path)
	if err != nil {
		chk.Panic("curtainopt: cannot read config file %q: %v", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		chk.Panic("curtainopt: cannot unmarshal config file %q: %v", path, err)
	}
	return cfg
}

func runOptimization(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig(configPath)

	startingPositions, err := iox.LoadPoints(filepath.Join(cfg.InDir, "iStartingPositions.csv"))
	if err != nil {
		return err
	}
	repellerPositions, err := iox.LoadPoints(filepath.Join(cfg.InDir, "iRepellers.csv"))
	if err != nil {
		return err
	}
	repellerFactors, err := iox.LoadFactors(filepath.Join(cfg.InDir, "iRepellerFactors.csv"))
	if err != nil {
		return err
	}
	if len(repellerFactors) != 4 {
		return fmt.Errorf("curtainopt: iRepellerFactors.csv must hold exactly 4 values, got %d", len(repellerFactors))
	}

	summerDate, err := time.Parse(dateLayout, cfg.Site.SummerDate)
	if err != nil {
		return fmt.Errorf("curtainopt: bad site.summerDate %q: %w", cfg.Site.SummerDate, err)
	}
	winterDate, err := time.Parse(dateLayout, cfg.Site.WinterDate)
	if err != nil {
		return fmt.Errorf("curtainopt: bad site.winterDate %q: %w", cfg.Site.WinterDate, err)
	}

	scene := evaluator.Scene{
		StartingPositions: startingPositions,
		RepellerPositions: repellerPositions,
		GrowthConfig:      evaluator.DefaultGrowthConfig(),
		Room:              evaluator.Room{Width: cfg.Room.Width, Height: cfg.Room.Height, CellSize: cfg.Room.CellSize},
		Site: evaluator.Site{
			LatitudeDeg:     cfg.Site.LatitudeDeg,
			LongitudeDeg:    cfg.Site.LongitudeDeg,
			TZOffsetHours:   cfg.Site.TZOffsetHours,
			MinElevationDeg: cfg.Site.MinElevationDeg,
			Up:              vecmath.Vec3{Z: 1},
			North:           vecmath.Vec3{Y: 1},
			SummerDate:      summerDate,
			WinterDate:      winterDate,
			WindowStart:     time.Duration(cfg.Site.WindowStartHour * float64(time.Hour)),
			WindowEnd:       time.Duration(cfg.Site.WindowEndHour * float64(time.Hour)),
			SampleInterval:  time.Duration(cfg.Site.SampleIntervalHours * float64(time.Hour)),
		},
	}
	eval := evaluator.New(scene)

	lo, hi := evaluator.DefaultBounds()
	nsgaCfg := nsga2.Config{
		PopulationSize: cfg.PopulationSize,
		Generations:    cfg.Generations,
		CrossoverRate:  cfg.CrossoverRate,
		MutationRate:   cfg.MutationRate,
		SBXEta:         cfg.SBXEta,
		MutationEta:    cfg.MutationEta,
		LowerBounds:    lo,
		UpperBounds:    hi,
		Seed:           cfg.Seed,
		Parallelism:    cfg.Parallelism,
	}
	nsgaCfg.CalcDerived()

	logDir := filepath.Join(cfg.OutDir, "nsga_logs")
	driver := nsga2.NewDriver(nsgaCfg, eval.Eval)
	driver.Log = log
	driver.OnGeneration = func(gen int, pop nsga2.Population) {
		iox.WriteFront0CSV(logDir, gen, pop)
		iox.WriteBestGenesCSV(logDir, gen, pop)
	}

	final := driver.Run()
	best := final[0]

	vertical, _, summer, winter := eval.Geometry(best.Genes)
	iox.SaveCurve(cfg.OutDir, "resultsCrv.csv", vertical)
	iox.SaveLighting(cfg.OutDir, "resultsLighting_summer.csv", summer, cfg.Room.CellSize)
	iox.SaveLighting(cfg.OutDir, "resultsLighting_winter.csv", winter, cfg.Room.CellSize)

	log.Info("curtainopt: run complete",
		zap.Float64("summerHours", best.Ova[0]),
		zap.Float64("winterHours", -best.Ova[1]),
		zap.String("outDir", cfg.OutDir),
	)
	return nil
}
