// Command wbcored is the process entry point: it loads the static
// configuration, builds the rigid-body model, and wires the sensor
// gateway, state estimator, actuator gateway, task solver and locomotion
// controller together at a fixed period. Device drivers, the
// parameter/RPC layer and the URDF parser are external collaborators;
// this process owns only the core loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/icub-wbd/wbcore/pkg/logger"
	"github.com/icub-wbd/wbcore/pkg/wbd/actuators"
	"github.com/icub-wbd/wbcore/pkg/wbd/config"
	"github.com/icub-wbd/wbcore/pkg/wbd/estimator"
	"github.com/icub-wbd/wbcore/pkg/wbd/locomotion"
	"github.com/icub-wbd/wbcore/pkg/wbd/rigidbody"
	"github.com/icub-wbd/wbcore/pkg/wbd/sensors"
	"github.com/icub-wbd/wbcore/pkg/wbd/tasksolver"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// loadTree builds the kinematic tree from a URDF document. URDF parsing
// itself is an external collaborator (spec §1); a real deployment
// replaces this with a call into that parser. The stub fails fast so a
// misconfigured process never silently runs with an empty tree.
var loadTree = func(urdfPath string) (types.TreeDescription, error) {
	return types.TreeDescription{}, fmt.Errorf("loadTree: no URDF parser wired for %q; external collaborator required", urdfPath)
}

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration document")
	flag.Parse()

	if *configPath == "" {
		logger.Log.Fatal().Msg("wbcored: -config is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("wbcored: loading configuration")
	}

	tree, err := loadTree(cfg.URDFPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("wbcored: building kinematic tree")
	}

	fixedBase, err := cfg.FixedBaseMode()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("wbcored: resolving fixed-base mode")
	}

	model, err := rigidbody.NewModel(rigidbody.Config{Tree: tree, FixedBase: fixedBase})
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("wbcored: constructing rigid-body model")
	}

	subtrees, err := resolveSubtrees(model, cfg.Subtrees)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("wbcored: resolving subtree table")
	}

	sensorGw := sensors.NewGateway()
	actuatorGw := actuators.NewGateway()

	period := cfg.Period()

	est := estimator.New(estimator.Config{
		Model:    model,
		Sensors:  sensorGw,
		Subtrees: subtrees,
		Period:   msToDuration(period),
	})

	solver := tasksolver.New(1e-3)
	locoController := locomotion.New(locomotion.Config{
		Model:     model,
		Solver:    solver,
		Actuators: actuatorGw,
		Period:    msToDuration(period),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Log.Info().
		Str("robot", cfg.RobotName).
		Str("local", cfg.LocalName).
		Int("period_ms", period).
		Int("subtrees", len(subtrees)).
		Msg("wbcored: starting")

	est.Start(ctx)
	defer est.Stop()
	defer locoController.Stop()

	<-ctx.Done()
	logger.Log.Info().Msg("wbcored: shutdown signal received")
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// resolveSubtrees translates the configuration's by-name subtree table
// into the model-link-index table the estimator consumes.
func resolveSubtrees(model *rigidbody.Model, cfgSubtrees []config.SubtreeConfig) ([]types.Subtree, error) {
	out := make([]types.Subtree, 0, len(cfgSubtrees))
	for _, st := range cfgSubtrees {
		links := make([]int, 0, len(st.Links))
		for _, name := range st.Links {
			id, ok := model.GetLinkId(name)
			if !ok {
				return nil, fmt.Errorf("subtree %q: unknown link %q", st.Name, name)
			}
			links = append(links, id)
		}
		defaultLink, ok := model.GetLinkId(st.DefaultContactLink)
		if !ok {
			return nil, fmt.Errorf("subtree %q: unknown default contact link %q", st.Name, st.DefaultContactLink)
		}
		out = append(out, types.Subtree{Name: st.Name, Links: links, DefaultContactLink: defaultLink})
	}
	return out, nil
}
