// datacheck validates the YAML data set and Lua balance scripts offline.
//
// Usage:
//
//	go run ./cmd/datacheck <command> [-datadir path] [-scripts path] [-out path]
//
// Commands: check, curve, multipliers, all
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/simcore/internal/data"
	"github.com/l1jgo/simcore/internal/physics"
	"github.com/l1jgo/simcore/internal/progression"
	"github.com/l1jgo/simcore/internal/scripting"
)

type options struct {
	dataDir    string
	scriptsDir string
	out        string
	curve      progression.Curve
}

func printUsage() {
	fmt.Println("Usage: datacheck <command> [-datadir path] [-scripts path] [-out path]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check        load every table and report broken references")
	fmt.Println("  curve        print the level curve (YAML); -out writes it to a file")
	fmt.Println("  multipliers  print exp_reward_multiplier for level differences -6..+6")
	fmt.Println("  all          run all of the above")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	opts := options{curve: progression.DefaultCurve()}
	fs.StringVar(&opts.dataDir, "datadir", filepath.Join("data", "yaml"), "YAML data directory")
	fs.StringVar(&opts.scriptsDir, "scripts", "scripts", "Lua scripts directory")
	fs.StringVar(&opts.out, "out", "", "curve output file (default stdout)")
	fs.Int64Var(&opts.curve.BaseExp, "base-exp", opts.curve.BaseExp, "experience for level 2")
	fs.Float64Var(&opts.curve.Growth, "growth", opts.curve.Growth, "per-level growth factor")
	fs.IntVar(&opts.curve.MaxLevel, "max-level", opts.curve.MaxLevel, "level cap")
	_ = fs.Parse(os.Args[2:])

	commands := map[string]func(options) error{
		"check":       runCheck,
		"curve":       runCurve,
		"multipliers": runMultipliers,
	}
	allOrder := []string{"check", "curve", "multipliers"}

	if cmd == "all" {
		for _, name := range allOrder {
			if err := commands[name](opts); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR [%s]: %v\n", name, err)
				os.Exit(1)
			}
		}
		return
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err := fn(opts); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func runCheck(opts options) error {
	store, err := data.Load(opts.dataDir)
	if err != nil {
		return err
	}
	engine, err := scripting.NewEngine(opts.scriptsDir, zap.NewNop())
	if err != nil {
		return err
	}
	defer engine.Close()

	problems := check(store)
	for _, fn := range []string{"exp_reward_multiplier", "calc_regen"} {
		if !engine.Has(fn) {
			fmt.Printf("  note: %s not defined, built-in fallback is used\n", fn)
		}
	}
	fmt.Printf("mobs %d, skills %d, items %d, spawn entries %d\n",
		store.Mobs.Count(), store.Skills.Count(), store.Items.Count(), len(store.Spawns))
	if len(problems) == 0 {
		fmt.Println("OK")
		return nil
	}
	for _, p := range problems {
		fmt.Println("  " + p)
	}
	return fmt.Errorf("%d problem(s)", len(problems))
}

// check reports references that would be skipped or misbehave at runtime.
func check(store *data.Store) []string {
	var problems []string
	blocked := physics.New(store.Zone.Bounds, store.Zone.Obstacles)

	for _, sp := range data.SpawnPoints(store.Spawns) {
		if _, ok := store.Mobs.Template(sp.TemplateID); !ok {
			problems = append(problems, fmt.Sprintf("spawn at (%.0f,%.0f): unknown mob %d", sp.Pos.X, sp.Pos.Y, sp.TemplateID))
			continue
		}
		if blocked.IsBlocked(sp.Pos) {
			problems = append(problems, fmt.Sprintf("spawn of mob %d at (%.0f,%.0f) is blocked", sp.TemplateID, sp.Pos.X, sp.Pos.Y))
		}
	}
	for _, sk := range store.Skills.All() {
		if sk.Range <= 0 {
			problems = append(problems, fmt.Sprintf("skill %d %q: range %.1f is not positive", sk.ID, sk.Name, sk.Range))
		}
		if named := store.Skills.GetByName(sk.Name); named != nil && named.ID != sk.ID {
			problems = append(problems, fmt.Sprintf("skill %d %q: name also used by skill %d", sk.ID, sk.Name, named.ID))
		}
	}
	for _, id := range store.Zone.Skills {
		if store.Skills.Get(id) == nil {
			problems = append(problems, fmt.Sprintf("zone player: unknown skill %d", id))
		}
	}
	for _, name := range store.Zone.Equipment {
		if _, ok := store.Items.Item(name); !ok {
			problems = append(problems, fmt.Sprintf("zone player: unknown item %q", name))
		}
	}
	if blocked.IsBlocked(store.Zone.Start) {
		problems = append(problems, "zone player: start position is blocked")
	}
	return problems
}

type curveRow struct {
	Level      int   `yaml:"level"`
	Cumulative int64 `yaml:"cumulative"`
	ToNext     int64 `yaml:"to_next,omitempty"`
}

type curveYAML struct {
	BaseExp  int64      `yaml:"base_exp"`
	Growth   float64    `yaml:"growth"`
	MaxLevel int        `yaml:"max_level"`
	Levels   []curveRow `yaml:"levels"`
}

func curveTable(c progression.Curve) curveYAML {
	cum := c.Cumulative()
	out := curveYAML{BaseExp: c.BaseExp, Growth: c.Growth, MaxLevel: c.MaxLevel}
	for lvl := 1; lvl <= c.MaxLevel; lvl++ {
		row := curveRow{Level: lvl, Cumulative: cum[lvl]}
		if lvl < c.MaxLevel {
			row.ToNext = cum[lvl+1] - cum[lvl]
		}
		out.Levels = append(out.Levels, row)
	}
	return out
}

func runCurve(opts options) error {
	var w io.Writer = os.Stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
		defer f.Close()
		w = f
	}
	return writeCurve(w, opts.curve)
}

func writeCurve(w io.Writer, c progression.Curve) error {
	out, err := yaml.Marshal(curveTable(c))
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	fmt.Fprintln(w, "# Generated by datacheck curve")
	_, err = w.Write(out)
	return err
}

func runMultipliers(opts options) error {
	engine, err := scripting.NewEngine(opts.scriptsDir, zap.NewNop())
	if err != nil {
		return err
	}
	defer engine.Close()
	for diff := -6; diff <= 6; diff++ {
		fmt.Printf("%+3d  %.2f\n", diff, engine.Multiplier(diff))
	}
	return nil
}
